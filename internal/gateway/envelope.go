package gateway

// Envelope は全ルートが返すレスポンスの共通形式。
// data と error のどちらか一方だけを持ち、success は data がある場合にのみ true になる。
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// successEnvelope はdataを持つ成功レスポンスを生成する。
func successEnvelope[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

// errorEnvelope はエラーメッセージを持つ失敗レスポンスを生成する。
func errorEnvelope(message string) Envelope[struct{}] {
	return Envelope[struct{}]{Success: false, Error: &message}
}
