package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"blog-summariser/pkg/httpclient"
)

// DefaultURL is the public MyMemory translation endpoint.
const DefaultURL = "https://api.mymemory.translated.net/get"

// RemoteError reports a translation response that could not be used.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// MyMemoryClient translates text with the MyMemory API.
type MyMemoryClient struct {
	client  *httpclient.HTTPClient
	baseURL string
}

// NewMyMemoryClient creates a new translation client. An empty baseURL uses DefaultURL.
func NewMyMemoryClient(baseURL string, timeout time.Duration) *MyMemoryClient {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &MyMemoryClient{
		client:  httpclient.NewClient(httpclient.APIClient, timeout),
		baseURL: baseURL,
	}
}

type translateResponse struct {
	ResponseData *struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseDetails any `json:"responseDetails"`
}

// Translate renders text from sourceLang into targetLang.
func (c *MyMemoryClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", sourceLang+"|"+targetLang)

	resp, err := c.client.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("call translation API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translation response: %w", err)
	}

	var data translateResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", &RemoteError{Message: "Translation API did not return JSON. Response: " + string(raw)}
	}

	if data.ResponseData == nil || data.ResponseData.TranslatedText == "" {
		details := "Unknown error"
		if data.ResponseDetails != nil && data.ResponseDetails != "" {
			details = fmt.Sprint(data.ResponseDetails)
		}
		return "", &RemoteError{Message: "Translation API error: " + details}
	}

	return data.ResponseData.TranslatedText, nil
}
