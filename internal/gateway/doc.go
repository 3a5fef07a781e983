// Package gateway はOrigin Identity Providerの前段に立つHTTP Gatewayを提供する。
//
// 各ルートはリクエストのパス/クエリを取り出してIdentity Providerの操作を
// 1つだけ呼び出し、結果を {"success":true,"data":...} に、失敗を
// {"success":false,"error":...} とHTTP 500に変換して返す。
// Gateway自身は状態を持たず、認証もIdentity Providerのセッションに委ねる。
package gateway
