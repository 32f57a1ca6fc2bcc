package invoker

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoke_SerializesPayload(t *testing.T) {
	client := &MockLambdaClient{}
	inv := New(client, "", "")
	payload := map[string]string{"path": "/api", "body": "{}"}

	out, err := inv.Invoke(context.Background(), "fnA", payload)

	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, client.Inputs, 1)

	in := client.Inputs[0]
	assert.Equal(t, "fnA", aws.ToString(in.FunctionName))
	assert.Equal(t, types.InvocationTypeRequestResponse, in.InvocationType)
	assert.Equal(t, types.LogTypeTail, in.LogType)
	assert.JSONEq(t, `{"path":"/api","body":"{}"}`, string(in.Payload))
}

func TestInvoke_PassesOutputThrough(t *testing.T) {
	raw := &lambda.InvokeOutput{
		StatusCode:    200,
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"kaboom"}`),
	}
	client := &MockLambdaClient{
		InvokeFn: func(context.Context, *lambda.InvokeInput, ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
			return raw, nil
		},
	}

	out, err := New(client, "Event", "None").Invoke(context.Background(), "fnB", nil)

	require.NoError(t, err)
	assert.Same(t, raw, out)
	assert.Equal(t, types.InvocationTypeEvent, client.Inputs[0].InvocationType)
	assert.Equal(t, types.LogTypeNone, client.Inputs[0].LogType)
	assert.Equal(t, "null", string(client.Inputs[0].Payload))
}

func TestInvoke_ProviderError(t *testing.T) {
	client := &MockLambdaClient{
		InvokeFn: func(context.Context, *lambda.InvokeInput, ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
			return nil, errors.New("denied")
		},
	}

	_, err := New(client, "", "").Invoke(context.Background(), "fnC", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoke fnC failed")
}

func TestInvoke_BadPayload(t *testing.T) {
	client := &MockLambdaClient{}

	_, err := New(client, "", "").Invoke(context.Background(), "fnD", make(chan int))

	var perr *PayloadError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 400, perr.HTTPStatusCode())
	assert.Empty(t, client.Inputs)
}
