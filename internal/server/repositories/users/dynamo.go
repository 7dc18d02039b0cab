package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
)

// DefaultTableName and DefaultEmailIndexName match the provisioned table.
const (
	DefaultTableName      = "User"
	DefaultEmailIndexName = "email-index"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository implements Repository over a single DynamoDB table with
// partition key "id" and a global secondary index on "email". The client
// handle is shared and concurrency-safe; no multi-item atomicity is used.
type DynamoRepository struct {
	client     DynamoDBAPI
	tableName  string
	emailIndex string
}

// NewDynamoRepository builds a repository. Empty table/index names fall
// back to the defaults.
func NewDynamoRepository(client DynamoDBAPI, tableName, emailIndex string) *DynamoRepository {
	if tableName == "" {
		tableName = DefaultTableName
	}
	if emailIndex == "" {
		emailIndex = DefaultEmailIndexName
	}
	return &DynamoRepository{client: client, tableName: tableName, emailIndex: emailIndex}
}

func (r *DynamoRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("marshaling user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put item: %w", common.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (r *DynamoRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get item: %w", common.ErrStoreUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrNotFound
	}
	return unmarshalUser(out.Item)
}

func (r *DynamoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("email").Equal(expression.Value(email))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building email query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.emailIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", common.ErrStoreUnavailable, r.emailIndex, err)
	}
	if len(out.Items) == 0 {
		return nil, common.ErrNotFound
	}
	return unmarshalUser(out.Items[0])
}

// FindByUsername pages through a filtered scan and stops at the first
// match. Consumed capacity grows with table size regardless of match
// count.
func (r *DynamoRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("username").Equal(expression.Value(username))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building username filter: %w", err)
	}

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %w", common.ErrStoreUnavailable, err)
		}
		if len(out.Items) > 0 {
			return unmarshalUser(out.Items[0])
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil, common.ErrNotFound
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *DynamoRepository) List(ctx context.Context, cursor string, limit int32) ([]models.User, string, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if limit > 0 {
		in.Limit = aws.Int32(limit)
	}
	if cursor != "" {
		in.ExclusiveStartKey = idKey(cursor)
	}

	out, err := r.client.Scan(ctx, in)
	if err != nil {
		return nil, "", fmt.Errorf("%w: scan: %w", common.ErrStoreUnavailable, err)
	}

	page := make([]models.User, 0, len(out.Items))
	for _, item := range out.Items {
		user, err := unmarshalUser(item)
		if err != nil {
			return nil, "", err
		}
		page = append(page, *user)
	}

	next := ""
	if key, ok := out.LastEvaluatedKey["id"]; ok {
		if s, ok := key.(*types.AttributeValueMemberS); ok {
			next = s.Value
		}
	}
	return page, next, nil
}

func (r *DynamoRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var all []models.User
	cursor := ""
	for {
		page, next, err := r.List(ctx, cursor, 0)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

func (r *DynamoRepository) Delete(ctx context.Context, user *models.User) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(user.ID),
	})
	if err != nil {
		return fmt.Errorf("%w: delete item: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *DynamoRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.FindByID(ctx, id))
}

func (r *DynamoRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(r.FindByEmail(ctx, email))
}

func exists(_ *models.User, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalUser(item map[string]types.AttributeValue) (*models.User, error) {
	user := &models.User{}
	if err := attributevalue.UnmarshalMap(item, user); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling user: %w", common.ErrStoreUnavailable, err)
	}
	return user, nil
}
