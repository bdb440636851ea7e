package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const requestsUserIDIndex = "user_id-index"

type statusUpdateItem struct {
	Status    string `dynamodbav:"status"`
	UpdatedBy string `dynamodbav:"updated_by"`
	UpdatedAt string `dynamodbav:"updated_at"`
	Notes     string `dynamodbav:"notes,omitempty"`
}

type ritualStepItem struct {
	StepNumber  int      `dynamodbav:"step_number"`
	StepName    string   `dynamodbav:"step_name"`
	Completed   bool     `dynamodbav:"completed"`
	CompletedAt string   `dynamodbav:"completed_at,omitempty"`
	Notes       string   `dynamodbav:"notes,omitempty"`
	PhotoURLs   []string `dynamodbav:"photo_urls"`
}

type serviceRequestItem struct {
	ID                      string             `dynamodbav:"id"`
	UserID                  string             `dynamodbav:"user_id"`
	QuoteID                 string             `dynamodbav:"quote_id,omitempty"`
	ServiceName             string             `dynamodbav:"service_name"`
	ServiceType             string             `dynamodbav:"service_type"`
	Description             string             `dynamodbav:"description"`
	ClientNotes             string             `dynamodbav:"client_notes,omitempty"`
	Status                  string             `dynamodbav:"status"`
	Priority                string             `dynamodbav:"priority"`
	StatusHistory           []statusUpdateItem `dynamodbav:"status_history"`
	AssignedTo              string             `dynamodbav:"assigned_to,omitempty"`
	AssignedAt              string             `dynamodbav:"assigned_at,omitempty"`
	RitualSteps             []ritualStepItem   `dynamodbav:"ritual_steps"`
	RitualNotes             string             `dynamodbav:"ritual_notes,omitempty"`
	PaymentIntentID         string             `dynamodbav:"payment_intent_id,omitempty"`
	AmountPaid              int64              `dynamodbav:"amount_paid"`
	RequestedAt             string             `dynamodbav:"requested_at"`
	StartedAt               string             `dynamodbav:"started_at,omitempty"`
	CompletedAt             string             `dynamodbav:"completed_at,omitempty"`
	EstimatedCompletionDate string             `dynamodbav:"estimated_completion_date,omitempty"`
	AdminNotes              string             `dynamodbav:"admin_notes,omitempty"`
	Tags                    []string           `dynamodbav:"tags"`
	CreatedAt               string             `dynamodbav:"created_at"`
	UpdatedAt               string             `dynamodbav:"updated_at"`
}

// ServiceRequestDynamoRepository persists ServiceRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// status_history and ritual_steps are created as empty lists and only grow
// through list_append. started_at and completed_at are written with
// if_not_exists so a second entry into their status keeps the first value.
type ServiceRequestDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb DynamoAPI, tableName string) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceRequestDynamoRepository) Create(ctx context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	av, err := attributevalue.MarshalMap(toServiceRequestItem(sr))
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}
	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func (r *ServiceRequestDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.ServiceRequest, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(requestsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalRequests(raw)
}

// List scans with the structural filters pushed down. RequestedSince is
// checked after decoding since stored timestamps do not compare as strings.
func (r *ServiceRequestDynamoRepository) List(ctx context.Context, q interfaces.RequestQuery) ([]entities.ServiceRequest, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	add := func(attr, value string) {
		n, v := "#"+attr, ":"+attr
		conds = append(conds, n+" = "+v)
		names[n] = attr
		values[v] = &types.AttributeValueMemberS{Value: value}
	}
	if q.Status != "" {
		add("status", string(q.Status))
	}
	if q.ServiceType != "" {
		add("service_type", string(q.ServiceType))
	}
	if q.AssignedTo != "" {
		add("assigned_to", q.AssignedTo)
	}
	if q.Priority != "" {
		add("priority", string(q.Priority))
	}
	if len(conds) > 0 {
		in.FilterExpression = aws.String(strings.Join(conds, " AND "))
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}

	raw, err := scanAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	rs, err := unmarshalRequests(raw)
	if err != nil {
		return nil, err
	}
	if q.RequestedSince == nil {
		return rs, nil
	}
	out := rs[:0]
	for _, sr := range rs {
		if !sr.RequestedAt.Before(*q.RequestedSince) {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (r *ServiceRequestDynamoRepository) ApplyStatusChange(ctx context.Context, id string, c entities.StatusChange) (entities.ServiceRequest, error) {
	entry, err := attributevalue.Marshal([]statusUpdateItem{toStatusUpdateItem(c.Entry)})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	now := formatTime(c.Entry.UpdatedAt)

	sets := []string{
		"#status = :to",
		"#history = list_append(#history, :entry)",
		"#updated_at = :now",
	}
	names := map[string]string{
		"#status":     "status",
		"#history":    "status_history",
		"#updated_at": "updated_at",
	}
	if c.SetStartedAt {
		sets = append(sets, "#started_at = if_not_exists(#started_at, :now)")
		names["#started_at"] = "started_at"
	}
	if c.SetCompleted {
		sets = append(sets, "#completed_at = if_not_exists(#completed_at, :now)")
		names["#completed_at"] = "completed_at"
	}

	return r.update(ctx, id,
		"SET "+strings.Join(sets, ", "),
		"#status = :from",
		map[string]types.AttributeValue{
			":to":    &types.AttributeValueMemberS{Value: string(c.Entry.Status)},
			":from":  &types.AttributeValueMemberS{Value: string(c.From)},
			":entry": entry,
			":now":   &types.AttributeValueMemberS{Value: now},
		},
		names,
	)
}

func (r *ServiceRequestDynamoRepository) UpdateFields(ctx context.Context, id string, u interfaces.RequestFieldsUpdate) (entities.ServiceRequest, error) {
	sets := []string{"#updated_at = :updated_at"}
	names := map[string]string{"#updated_at": "updated_at"}
	values := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(u.UpdatedAt)},
	}
	setS := func(attr, value string) {
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
		names["#"+attr] = attr
		values[":"+attr] = &types.AttributeValueMemberS{Value: value}
	}

	if u.AssignedTo != nil {
		setS("assigned_to", *u.AssignedTo)
	}
	if u.AssignedAt != nil {
		setS("assigned_at", formatTime(*u.AssignedAt))
	}
	if u.Priority != nil {
		setS("priority", string(*u.Priority))
	}
	if u.AdminNotes != nil {
		setS("admin_notes", *u.AdminNotes)
	}
	if u.EstimatedCompletionDate != nil {
		setS("estimated_completion_date", formatTime(*u.EstimatedCompletionDate))
	}
	if u.PaymentIntentID != nil {
		setS("payment_intent_id", *u.PaymentIntentID)
	}
	if u.AmountPaid != nil {
		sets = append(sets, "#amount_paid = :amount_paid")
		names["#amount_paid"] = "amount_paid"
		values[":amount_paid"] = &types.AttributeValueMemberN{Value: formatInt(*u.AmountPaid)}
	}
	if u.SetTags {
		tags, err := attributevalue.Marshal(nonNilStrings(u.Tags))
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		sets = append(sets, "#tags = :tags")
		names["#tags"] = "tags"
		values[":tags"] = tags
	}

	return r.update(ctx, id, "SET "+strings.Join(sets, ", "), "", values, names)
}

func (r *ServiceRequestDynamoRepository) AppendStep(ctx context.Context, id string, expectedCount int, step entities.RitualStep, at time.Time) (entities.ServiceRequest, error) {
	av, err := attributevalue.Marshal([]ritualStepItem{toRitualStepItem(step)})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	return r.update(ctx, id,
		"SET #steps = list_append(#steps, :step), #updated_at = :now",
		"size(#steps) = :count",
		map[string]types.AttributeValue{
			":step":  av,
			":count": &types.AttributeValueMemberN{Value: strconv.Itoa(expectedCount)},
			":now":   &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		map[string]string{
			"#steps":      "ritual_steps",
			"#updated_at": "updated_at",
		},
	)
}

func (r *ServiceRequestDynamoRepository) SetStepCompletion(ctx context.Context, id string, index int, completed bool, at time.Time) (entities.ServiceRequest, error) {
	step := fmt.Sprintf("#steps[%d]", index)
	values := map[string]types.AttributeValue{
		":completed": &types.AttributeValueMemberBOOL{Value: completed},
		":previous":  &types.AttributeValueMemberBOOL{Value: !completed},
		":now":       &types.AttributeValueMemberS{Value: formatTime(at)},
	}
	expr := fmt.Sprintf("SET %[1]s.#completed = :completed, #updated_at = :now", step)
	if completed {
		expr = fmt.Sprintf("SET %[1]s.#completed = :completed, %[1]s.#completed_at = :now, #updated_at = :now", step)
	} else {
		expr += fmt.Sprintf(" REMOVE %s.#completed_at", step)
	}
	return r.update(ctx, id, expr,
		step+".#completed = :previous",
		values,
		map[string]string{
			"#steps":        "ritual_steps",
			"#completed":    "completed",
			"#completed_at": "completed_at",
			"#updated_at":   "updated_at",
		},
	)
}

func (r *ServiceRequestDynamoRepository) AppendStepPhotos(ctx context.Context, id string, index int, urls []string, at time.Time) (entities.ServiceRequest, error) {
	av, err := attributevalue.Marshal(urls)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	step := fmt.Sprintf("#steps[%d]", index)
	return r.update(ctx, id,
		fmt.Sprintf("SET %[1]s.#photos = list_append(if_not_exists(%[1]s.#photos, :empty), :urls), #updated_at = :now", step),
		"attribute_exists("+step+")",
		map[string]types.AttributeValue{
			":urls":  av,
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":now":   &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		map[string]string{
			"#steps":      "ritual_steps",
			"#photos":     "photo_urls",
			"#updated_at": "updated_at",
		},
	)
}

// update runs a conditional UpdateItem; condition may be empty when only
// existence is required.
func (r *ServiceRequestDynamoRepository) update(
	ctx context.Context,
	id, updateExpr, condition string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.ServiceRequest, error) {
	cond := "attribute_exists(#id)"
	if condition != "" {
		cond += " AND " + condition
	}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey(id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.ServiceRequest{}, interfaces.ErrPreconditionFailed
		}
		return entities.ServiceRequest{}, err
	}
	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func unmarshalRequests(raw []map[string]types.AttributeValue) ([]entities.ServiceRequest, error) {
	rs := make([]entities.ServiceRequest, 0, len(raw))
	for _, m := range raw {
		var it serviceRequestItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		rs = append(rs, fromServiceRequestItem(it))
	}
	return rs, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toStatusUpdateItem(u entities.StatusUpdate) statusUpdateItem {
	return statusUpdateItem{
		Status:    string(u.Status),
		UpdatedBy: u.UpdatedBy,
		UpdatedAt: formatTime(u.UpdatedAt),
		Notes:     u.Notes,
	}
}

func toRitualStepItem(s entities.RitualStep) ritualStepItem {
	return ritualStepItem{
		StepNumber:  s.StepNumber,
		StepName:    s.StepName,
		Completed:   s.Completed,
		CompletedAt: formatTimePtr(s.CompletedAt),
		Notes:       s.Notes,
		PhotoURLs:   nonNilStrings(s.PhotoURLs),
	}
}

func toServiceRequestItem(sr entities.ServiceRequest) serviceRequestItem {
	history := make([]statusUpdateItem, 0, len(sr.StatusHistory))
	for _, h := range sr.StatusHistory {
		history = append(history, toStatusUpdateItem(h))
	}
	steps := make([]ritualStepItem, 0, len(sr.RitualSteps))
	for _, s := range sr.RitualSteps {
		steps = append(steps, toRitualStepItem(s))
	}
	return serviceRequestItem{
		ID:                      sr.ID,
		UserID:                  sr.UserID,
		QuoteID:                 sr.QuoteID,
		ServiceName:             sr.ServiceName,
		ServiceType:             string(sr.ServiceType),
		Description:             sr.Description,
		ClientNotes:             sr.ClientNotes,
		Status:                  string(sr.Status),
		Priority:                string(sr.Priority),
		StatusHistory:           history,
		AssignedTo:              sr.AssignedTo,
		AssignedAt:              formatTimePtr(sr.AssignedAt),
		RitualSteps:             steps,
		RitualNotes:             sr.RitualNotes,
		PaymentIntentID:         sr.PaymentIntentID,
		AmountPaid:              sr.AmountPaid,
		RequestedAt:             formatTime(sr.RequestedAt),
		StartedAt:               formatTimePtr(sr.StartedAt),
		CompletedAt:             formatTimePtr(sr.CompletedAt),
		EstimatedCompletionDate: formatTimePtr(sr.EstimatedCompletionDate),
		AdminNotes:              sr.AdminNotes,
		Tags:                    nonNilStrings(sr.Tags),
		CreatedAt:               formatTime(sr.CreatedAt),
		UpdatedAt:               formatTime(sr.UpdatedAt),
	}
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	history := make([]entities.StatusUpdate, 0, len(it.StatusHistory))
	for _, h := range it.StatusHistory {
		history = append(history, entities.StatusUpdate{
			Status:    entities.RequestStatus(h.Status),
			UpdatedBy: h.UpdatedBy,
			UpdatedAt: parseTime(h.UpdatedAt),
			Notes:     h.Notes,
		})
	}
	steps := make([]entities.RitualStep, 0, len(it.RitualSteps))
	for _, s := range it.RitualSteps {
		steps = append(steps, entities.RitualStep{
			StepNumber:  s.StepNumber,
			StepName:    s.StepName,
			Completed:   s.Completed,
			CompletedAt: parseTimePtr(s.CompletedAt),
			Notes:       s.Notes,
			PhotoURLs:   nonNilStrings(s.PhotoURLs),
		})
	}
	return entities.ServiceRequest{
		ID:                      it.ID,
		UserID:                  it.UserID,
		QuoteID:                 it.QuoteID,
		ServiceName:             it.ServiceName,
		ServiceType:             entities.ServiceID(it.ServiceType),
		Description:             it.Description,
		ClientNotes:             it.ClientNotes,
		Status:                  entities.RequestStatus(it.Status),
		Priority:                entities.Priority(it.Priority),
		StatusHistory:           history,
		AssignedTo:              it.AssignedTo,
		AssignedAt:              parseTimePtr(it.AssignedAt),
		RitualSteps:             steps,
		RitualNotes:             it.RitualNotes,
		PaymentIntentID:         it.PaymentIntentID,
		AmountPaid:              it.AmountPaid,
		RequestedAt:             parseTime(it.RequestedAt),
		StartedAt:               parseTimePtr(it.StartedAt),
		CompletedAt:             parseTimePtr(it.CompletedAt),
		EstimatedCompletionDate: parseTimePtr(it.EstimatedCompletionDate),
		AdminNotes:              it.AdminNotes,
		Tags:                    it.Tags,
		CreatedAt:               parseTime(it.CreatedAt),
		UpdatedAt:               parseTime(it.UpdatedAt),
	}
}
