package repository

import (
	"context"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const quotesUserIDIndex = "user_id-index"

type priceQuoteItem struct {
	ID              string `dynamodbav:"id"`
	UserID          string `dynamodbav:"user_id"`
	ServiceID       string `dynamodbav:"service_id"`
	ServiceName     string `dynamodbav:"service_name"`
	QuotedPrice     int64  `dynamodbav:"quoted_price"`
	Currency        string `dynamodbav:"currency"`
	Notes           string `dynamodbav:"notes,omitempty"`
	ValidUntil      string `dynamodbav:"valid_until,omitempty"`
	Accepted        bool   `dynamodbav:"accepted"`
	AcceptedAt      string `dynamodbav:"accepted_at,omitempty"`
	RejectedAt      string `dynamodbav:"rejected_at,omitempty"`
	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// PriceQuoteDynamoRepository persists PriceQuote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// rejected_at is only written on rejection, so attribute_not_exists(rejected_at)
// is the "not rejected" precondition.
type PriceQuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPriceQuoteRepository = (*PriceQuoteDynamoRepository)(nil)

func NewPriceQuoteDynamoRepository(ddb DynamoAPI, tableName string) *PriceQuoteDynamoRepository {
	return &PriceQuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PriceQuoteDynamoRepository) Create(ctx context.Context, q entities.PriceQuote) (entities.PriceQuote, error) {
	av, err := attributevalue.MarshalMap(toPriceQuoteItem(q))
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.PriceQuote{}, err
	}
	return q, nil
}

func (r *PriceQuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.PriceQuote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if len(out.Item) == 0 {
		return entities.PriceQuote{}, nil
	}
	var it priceQuoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PriceQuote{}, err
	}
	return fromPriceQuoteItem(it), nil
}

func (r *PriceQuoteDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.PriceQuote, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalQuotes(raw)
}

func (r *PriceQuoteDynamoRepository) ListAll(ctx context.Context) ([]entities.PriceQuote, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return unmarshalQuotes(raw)
}

func (r *PriceQuoteDynamoRepository) MarkAccepted(ctx context.Context, id string, at time.Time) (entities.PriceQuote, error) {
	ts := formatTime(at)
	return r.update(ctx, id,
		"SET #accepted = :true, #accepted_at = :at, #updated_at = :at",
		"attribute_not_exists(#rejected_at)",
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
			":at":   &types.AttributeValueMemberS{Value: ts},
		},
		map[string]string{
			"#accepted":    "accepted",
			"#accepted_at": "accepted_at",
			"#rejected_at": "rejected_at",
			"#updated_at":  "updated_at",
		},
	)
}

func (r *PriceQuoteDynamoRepository) MarkRejected(ctx context.Context, id, reason string, at time.Time) (entities.PriceQuote, error) {
	ts := formatTime(at)
	return r.update(ctx, id,
		"SET #rejected_at = :at, #reason = :reason, #updated_at = :at",
		"#accepted = :false",
		map[string]types.AttributeValue{
			":false":  &types.AttributeValueMemberBOOL{Value: false},
			":at":     &types.AttributeValueMemberS{Value: ts},
			":reason": &types.AttributeValueMemberS{Value: reason},
		},
		map[string]string{
			"#accepted":    "accepted",
			"#rejected_at": "rejected_at",
			"#reason":      "rejection_reason",
			"#updated_at":  "updated_at",
		},
	)
}

func (r *PriceQuoteDynamoRepository) Update(ctx context.Context, id string, u interfaces.QuoteUpdate) (entities.PriceQuote, error) {
	expr := "SET #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":false":      &types.AttributeValueMemberBOOL{Value: false},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(u.UpdatedAt)},
	}
	names := map[string]string{
		"#accepted":    "accepted",
		"#rejected_at": "rejected_at",
		"#updated_at":  "updated_at",
	}
	if u.QuotedPrice != nil {
		expr += ", #price = :price"
		values[":price"] = &types.AttributeValueMemberN{Value: formatInt(*u.QuotedPrice)}
		names["#price"] = "quoted_price"
	}
	if u.Notes != nil {
		expr += ", #notes = :notes"
		values[":notes"] = &types.AttributeValueMemberS{Value: *u.Notes}
		names["#notes"] = "notes"
	}
	if u.ValidUntil != nil {
		expr += ", #valid_until = :valid_until"
		values[":valid_until"] = &types.AttributeValueMemberS{Value: formatTime(*u.ValidUntil)}
		names["#valid_until"] = "valid_until"
	}
	return r.update(ctx, id, expr, "#accepted = :false AND attribute_not_exists(#rejected_at)", values, names)
}

func (r *PriceQuoteDynamoRepository) DeleteExpired(ctx context.Context, q entities.PriceQuote) (bool, error) {
	if q.ValidUntil == nil {
		return false, nil
	}
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey(q.ID),
		ConditionExpression: aws.String("#accepted = :false AND attribute_not_exists(#rejected_at) AND #valid_until = :valid_until"),
		ExpressionAttributeNames: map[string]string{
			"#accepted":    "accepted",
			"#rejected_at": "rejected_at",
			"#valid_until": "valid_until",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false":       &types.AttributeValueMemberBOOL{Value: false},
			":valid_until": &types.AttributeValueMemberS{Value: formatTime(*q.ValidUntil)},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// update runs a conditional UpdateItem on an existing quote.
func (r *PriceQuoteDynamoRepository) update(
	ctx context.Context,
	id, updateExpr, condition string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.PriceQuote, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND " + condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.PriceQuote{}, interfaces.ErrPreconditionFailed
		}
		return entities.PriceQuote{}, err
	}
	var it priceQuoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PriceQuote{}, err
	}
	return fromPriceQuoteItem(it), nil
}

func unmarshalQuotes(raw []map[string]types.AttributeValue) ([]entities.PriceQuote, error) {
	quotes := make([]entities.PriceQuote, 0, len(raw))
	for _, m := range raw {
		var it priceQuoteItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		quotes = append(quotes, fromPriceQuoteItem(it))
	}
	return quotes, nil
}

func toPriceQuoteItem(q entities.PriceQuote) priceQuoteItem {
	return priceQuoteItem{
		ID:              q.ID,
		UserID:          q.UserID,
		ServiceID:       string(q.ServiceID),
		ServiceName:     q.ServiceName,
		QuotedPrice:     q.QuotedPrice,
		Currency:        q.Currency,
		Notes:           q.Notes,
		ValidUntil:      formatTimePtr(q.ValidUntil),
		Accepted:        q.Accepted,
		AcceptedAt:      formatTimePtr(q.AcceptedAt),
		RejectedAt:      formatTimePtr(q.RejectedAt),
		RejectionReason: q.RejectionReason,
		CreatedAt:       formatTime(q.CreatedAt),
		UpdatedAt:       formatTime(q.UpdatedAt),
	}
}

func fromPriceQuoteItem(it priceQuoteItem) entities.PriceQuote {
	return entities.PriceQuote{
		ID:              it.ID,
		UserID:          it.UserID,
		ServiceID:       entities.ServiceID(it.ServiceID),
		ServiceName:     it.ServiceName,
		QuotedPrice:     it.QuotedPrice,
		Currency:        it.Currency,
		Notes:           it.Notes,
		ValidUntil:      parseTimePtr(it.ValidUntil),
		Accepted:        it.Accepted,
		AcceptedAt:      parseTimePtr(it.AcceptedAt),
		RejectedAt:      parseTimePtr(it.RejectedAt),
		RejectionReason: it.RejectionReason,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
