// dyndb/table_test.go
package dyndb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/aws-helper/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionKey() dyndb.Item {
	return dyndb.Item{
		"user_id":   &types.AttributeValueMemberS{Value: "u1"},
		"device_id": &types.AttributeValueMemberS{Value: "d1"},
	}
}

func TestGet_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	expectedItem := dyndb.Item{
		"user_id":   &types.AttributeValueMemberS{Value: "u1"},
		"device_id": &types.AttributeValueMemberS{Value: "d1"},
		"jwt":       &types.AttributeValueMemberS{Value: "token"},
	}

	mockClient.On("GetItem", mock.Anything, &dynamodb.GetItemInput{
		TableName: aws.String("test-table"),
		Key:       sessionKey(),
	}).Return(&dynamodb.GetItemOutput{Item: expectedItem}, nil).Once()

	item, err := table.Get(context.Background(), sessionKey(), nil)

	require.NoError(t, err)
	assert.Equal(t, expectedItem, item)
	mockClient.AssertExpectations(t)
	mockClient.AssertNumberOfCalls(t, "GetItem", 1)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	item, err := table.Get(context.Background(), sessionKey(), nil)

	assert.Nil(t, item)
	assert.ErrorIs(t, err, dyndb.ErrNotFound)
}

func TestGet_ProviderError(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)
	providerErr := errors.New("throttled")

	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, providerErr)

	_, err := table.Get(context.Background(), sessionKey(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "dyndb: get failed")
}

func TestGetRequest_Projection(t *testing.T) {
	t.Parallel()

	table := createTestTable(&MockDynamoClient{})

	t.Run("raw expression", func(t *testing.T) {
		in, err := table.GetRequest(sessionKey(), dyndb.RawProjection("jwt, login_time"))
		require.NoError(t, err)
		assert.Equal(t, "jwt, login_time", aws.ToString(in.ProjectionExpression))
		assert.Nil(t, in.ExpressionAttributeNames)
	})

	t.Run("empty raw expression is omitted", func(t *testing.T) {
		in, err := table.GetRequest(sessionKey(), dyndb.RawProjection(""))
		require.NoError(t, err)
		assert.Nil(t, in.ProjectionExpression)
	})

	t.Run("names list", func(t *testing.T) {
		in, err := table.GetRequest(sessionKey(), dyndb.ProjectionOf("jwt", "permission"))
		require.NoError(t, err)
		require.NotNil(t, in.ProjectionExpression)

		names := make([]string, 0, len(in.ExpressionAttributeNames))
		for _, v := range in.ExpressionAttributeNames {
			names = append(names, v)
		}
		assert.ElementsMatch(t, []string{"jwt", "permission"}, names)
		assert.Equal(t, "test-table", aws.ToString(in.TableName))
	})

	t.Run("empty name is a request error", func(t *testing.T) {
		_, err := table.GetRequest(sessionKey(), dyndb.ProjectionOf("jwt", ""))
		require.Error(t, err)

		var reqErr *dyndb.RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, 400, reqErr.HTTPStatusCode())
	})
}

func TestGetRequest_ConsistentRead(t *testing.T) {
	table := dyndb.NewTable(&MockDynamoClient{}, dyndb.TableConfig{TableName: "t", ConsistentRead: true})

	in, err := table.GetRequest(sessionKey(), nil)

	require.NoError(t, err)
	assert.True(t, aws.ToBool(in.ConsistentRead))
}

func TestPut_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	item, err := dyndb.MarshalItem(SessionItem{UserID: "u1", DeviceID: "d1", JWT: "token"})
	require.NoError(t, err)

	mockClient.On("PutItem", mock.Anything, &dynamodb.PutItemInput{
		TableName: aws.String("test-table"),
		Item:      item,
	}).Return(&dynamodb.PutItemOutput{}, nil).Once()

	err = table.Put(context.Background(), item)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestPut_Error(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	err := table.Put(context.Background(), sessionKey())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dyndb: put failed")
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("DeleteItem", mock.Anything, &dynamodb.DeleteItemInput{
		TableName: aws.String("test-table"),
		Key:       sessionKey(),
	}).Return(&dynamodb.DeleteItemOutput{}, nil).Once()

	err := table.Delete(context.Background(), sessionKey())

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestMarshalRoundTrip(t *testing.T) {
	item, err := dyndb.MarshalItem(map[string]any{"user_id": "u1", "expiry_interval": 3600})
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "u1"}, item["user_id"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "3600"}, item["expiry_interval"])

	plain, err := dyndb.UnmarshalItem(item)
	require.NoError(t, err)
	assert.Equal(t, "u1", plain["user_id"])
	assert.Equal(t, float64(3600), plain["expiry_interval"])
}

func TestBuiltinMock_RecordsCalls(t *testing.T) {
	client := &dyndb.MockDynamoClient{}
	table := createTestTable(client)

	_, err := table.Get(context.Background(), sessionKey(), nil)
	assert.ErrorIs(t, err, dyndb.ErrNotFound)
	require.NoError(t, table.Delete(context.Background(), sessionKey()))

	assert.Equal(t, 2, client.Calls())
	require.Len(t, client.Gets, 1)
	assert.Equal(t, "test-table", aws.ToString(client.Gets[0].TableName))
}
