package origin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nao1215/origin-gateway/pkg/httpclient"
)

// errNoData はdataを含まない成功レスポンスのエラーメッセージ。
const errNoData = "origin api returned no data"

// session はアクセストークンを伴うAPI呼び出しの単位。
type session struct {
	api         *httpclient.Client
	accessToken string
}

// apiResponse はOrigin APIのレスポンスの共通形式。
// dataは欠落とnullを区別するためにRawMessageで受け取る。
type apiResponse struct {
	IsError bool            `json:"isError"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// getData はGETリクエストを送信し、レスポンスのdataを返す。
// dataが無いかnullの場合はAPIErrorを返す。
func getData[T any](ctx context.Context, s *session, path string, query url.Values) (T, error) {
	var zero T
	var resp apiResponse
	ctx = httpclient.WithBearerToken(ctx, s.accessToken)
	if err := s.api.GetJSON(ctx, path, query, &resp); err != nil {
		return zero, translateError(err)
	}
	if resp.IsError {
		msg := resp.Message
		if msg == "" {
			msg = "origin api returned an error"
		}
		return zero, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	if len(resp.Data) == 0 || bytes.Equal(bytes.TrimSpace(resp.Data), []byte("null")) {
		return zero, &APIError{StatusCode: http.StatusOK, Message: errNoData}
	}

	var data T
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return zero, fmt.Errorf("dataのデシリアライズに失敗: %w", err)
	}
	return data, nil
}
