package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Millis is a timestamp persisted as a DynamoDB number holding epoch
// milliseconds. The store's native value type is numeric, so the conversion
// happens here rather than in the repository. Values round-trip exactly at
// millisecond precision; use NowMillis for new timestamps so no sub-ms
// component is lost.
type Millis struct {
	time.Time
}

// NowMillis returns the current instant truncated to millisecond precision.
func NowMillis() Millis {
	return MillisOf(time.Now())
}

// MillisOf truncates t to millisecond precision.
func MillisOf(t time.Time) Millis {
	return Millis{t.Truncate(time.Millisecond)}
}

func (m Millis) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if m.IsZero() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(m.UnixMilli(), 10)}, nil
}

func (m *Millis) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberNULL:
		m.Time = time.Time{}
		return nil
	case *types.AttributeValueMemberN:
		ms, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing epoch milliseconds: %w", err)
		}
		m.Time = time.UnixMilli(ms).UTC()
		return nil
	default:
		return fmt.Errorf("unexpected attribute type %T for timestamp", av)
	}
}
