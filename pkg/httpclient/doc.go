// Package httpclient は外部サービスとのJSON over HTTP通信を行うクライアントを提供する。
//
// Identity Provider（Origin API）の呼び出しに使用する。
// タイムアウト、固定ヘッダー、リクエストIDとアクセストークンの伝播、
// 2xx以外のレスポンスのエラー化など、通信パターンを統一する。
package httpclient
