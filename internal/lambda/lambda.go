// Package lambda serves a webhook endpoint from AWS Lambda behind an API
// Gateway REST proxy integration.
package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// Handler converts API Gateway proxy events for a webhook endpoint.
type Handler struct {
	endpoint webhook.Handler
}

// New creates a Handler for endpoint.
func New(endpoint webhook.Handler) *Handler {
	return &Handler{endpoint: endpoint}
}

// Invoke handles one proxy event. Failures are expressed as HTTP
// statuses; a returned error would surface as a gateway error instead.
func (h *Handler) Invoke(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	in, err := ToRequest(req)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}
	return FromResponse(h.endpoint.Handle(ctx, in)), nil
}

// Start runs the Lambda runtime loop. It does not return.
func Start(endpoint webhook.Handler) {
	awslambda.Start(New(endpoint).Invoke)
}

// ToRequest converts a proxy event to a webhook request. Multi-value
// headers win over single-value ones when both are present.
func ToRequest(req events.APIGatewayProxyRequest) (webhook.Request, error) {
	header := make(http.Header)
	if len(req.MultiValueHeaders) > 0 {
		for k, values := range req.MultiValueHeaders {
			for _, v := range values {
				header.Add(k, v)
			}
		}
	} else {
		for k, v := range req.Headers {
			header.Add(k, v)
		}
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return webhook.Request{}, fmt.Errorf("decoding base64 body: %w", err)
		}
		body = decoded
	}
	return webhook.Request{Header: header, Body: body}, nil
}

// FromResponse converts a webhook response to a proxy response.
func FromResponse(resp webhook.Response) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{StatusCode: resp.Status}
	if !resp.Empty() {
		out.Headers = map[string]string{"Content-Type": resp.ContentType}
		out.Body = string(resp.Body)
	}
	return out
}
