package origin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nao1215/origin-gateway/pkg/httpclient"
)

var (
	// ErrNotAuthenticated は有効なセッショントークンが無いことを表す。
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrMissingClientID はクライアントIDが指定されていないことを表す。
	ErrMissingClientID = errors.New("client id is required")
)

// APIError はOrigin APIが返したエラー。
// Error() はAPIが返したメッセージ文字列をそのまま返す。
type APIError struct {
	// StatusCode はHTTPステータスコード。APIがボディでエラーを返した場合は200になり得る。
	StatusCode int
	// Message はAPIが返したエラーメッセージ。
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return e.Message
}

// errorBody はOrigin APIのエラーレスポンスボディ。
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// translateError は通信層のエラーをAPIErrorに変換する。
// HTTPステータスエラー以外はそのまま返す。
func translateError(err error) error {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	apiErr := &APIError{StatusCode: statusErr.StatusCode}
	var body errorBody
	if json.Unmarshal(statusErr.Body, &body) == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		if text := strings.TrimSpace(string(statusErr.Body)); text != "" && !json.Valid(statusErr.Body) {
			apiErr.Message = text
		} else {
			apiErr.Message = strings.ToLower(http.StatusText(statusErr.StatusCode))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status %d", statusErr.StatusCode)
	}
	return apiErr
}
