package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"recipe-assistant/internal/domain"
)

const (
	skPrefixMsg = "MSG#"
	skMeta      = "META#"
	ttlDuration = 30 * 24 * time.Hour // 30-day TTL

	// maxTransactItems is the DynamoDB limit on items per TransactWriteItems call.
	maxTransactItems = 100
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
type dynamodbAPI interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Client wraps a DynamoDB table for conversation history.
type Client struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName, now: time.Now}, nil
}

// convPK returns the DynamoDB partition key for a conversation.
func convPK(conversationID string) string {
	return "CONV#" + conversationID
}

// msgSK returns the sort key for the message at position seq. Zero padding
// keeps lexical and numeric order identical.
func msgSK(seq int) string {
	return fmt.Sprintf("%s%06d", skPrefixMsg, seq)
}

func (c *Client) ttlValue() int64 {
	return c.now().Add(ttlDuration).Unix()
}

// GetHistory returns every stored message of a conversation in order. An
// unknown conversation yields an empty history.
func (c *Client) GetHistory(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: convPK(conversationID)},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixMsg},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	}

	var msgs []domain.ChatMessage
	for {
		out, err := c.api.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("repository: GetHistory query: %w", err)
		}
		for _, item := range out.Items {
			msg, err := itemToMessage(item)
			if err != nil {
				return nil, fmt.Errorf("repository: GetHistory unmarshal: %w", err)
			}
			msgs = append(msgs, domain.ChatMessage{Role: msg.Role, Content: msg.Content})
		}
		if len(out.LastEvaluatedKey) == 0 {
			return msgs, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// AppendMessages stores msgs at positions offset.. and updates the
// conversation metadata in one transaction. A position that is already taken
// fails the whole write, so concurrent turns on one conversation cannot
// interleave.
func (c *Client) AppendMessages(ctx context.Context, conversationID string, offset int, msgs []domain.ChatMessage) error {
	if strings.TrimSpace(conversationID) == "" {
		return errors.New("repository: AppendMessages: conversation ID is required")
	}
	if offset < 0 {
		return errors.New("repository: AppendMessages: offset must not be negative")
	}
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs)+1 > maxTransactItems {
		return fmt.Errorf("repository: AppendMessages: %d messages exceed the transaction limit", len(msgs))
	}

	items := make([]types.TransactWriteItem, 0, len(msgs)+1)
	for i, m := range msgs {
		stored := c.NewStoredMessage(conversationID, offset+i, m)
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(c.tableName),
				Item:                messageItem(stored),
				ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
			},
		})
	}
	meta := c.NewConversationMeta(conversationID, offset+len(msgs))
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(c.tableName),
			Item:      metaItem(meta),
		},
	})

	if _, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return fmt.Errorf("repository: AppendMessages: %w", err)
	}
	return nil
}

// NewStoredMessage constructs a StoredMessage with PK/SK/TTL set.
func (c *Client) NewStoredMessage(conversationID string, seq int, m domain.ChatMessage) domain.StoredMessage {
	return domain.StoredMessage{
		PK:             convPK(conversationID),
		SK:             msgSK(seq),
		ConversationID: conversationID,
		Seq:            seq,
		Role:           m.Role,
		Content:        m.Content,
		TTL:            c.ttlValue(),
	}
}

// NewConversationMeta constructs a ConversationMeta record.
func (c *Client) NewConversationMeta(conversationID string, messages int) domain.ConversationMeta {
	return domain.ConversationMeta{
		PK:             convPK(conversationID),
		SK:             skMeta,
		ConversationID: conversationID,
		LastActivity:   c.now().UTC().Format(time.RFC3339),
		Messages:       messages,
		TTL:            c.ttlValue(),
	}
}

// itemToMessage converts a DynamoDB attribute map to a StoredMessage.
func itemToMessage(item map[string]types.AttributeValue) (domain.StoredMessage, error) {
	pk, err := strAttr(item, "PK")
	if err != nil {
		return domain.StoredMessage{}, err
	}
	sk, err := strAttr(item, "SK")
	if err != nil {
		return domain.StoredMessage{}, err
	}
	role, err := strAttr(item, "role")
	if err != nil {
		return domain.StoredMessage{}, err
	}
	content, _ := strAttr(item, "content") // allow empty
	seq, _ := intAttr(item, "seq")

	return domain.StoredMessage{
		PK:      pk,
		SK:      sk,
		Seq:     seq,
		Role:    role,
		Content: content,
	}, nil
}

func messageItem(msg domain.StoredMessage) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: msg.PK},
		"SK":             &types.AttributeValueMemberS{Value: msg.SK},
		"conversationId": &types.AttributeValueMemberS{Value: msg.ConversationID},
		"seq":            &types.AttributeValueMemberN{Value: strconv.Itoa(msg.Seq)},
		"role":           &types.AttributeValueMemberS{Value: msg.Role},
		"content":        &types.AttributeValueMemberS{Value: msg.Content},
		"ttl":            &types.AttributeValueMemberN{Value: strconv.FormatInt(msg.TTL, 10)},
	}
}

func metaItem(meta domain.ConversationMeta) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: meta.PK},
		"SK":             &types.AttributeValueMemberS{Value: meta.SK},
		"conversationId": &types.AttributeValueMemberS{Value: meta.ConversationID},
		"lastActivity":   &types.AttributeValueMemberS{Value: meta.LastActivity},
		"messages":       &types.AttributeValueMemberN{Value: strconv.Itoa(meta.Messages)},
		"ttl":            &types.AttributeValueMemberN{Value: strconv.FormatInt(meta.TTL, 10)},
	}
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
