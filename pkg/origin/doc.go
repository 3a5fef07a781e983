// Package origin はOrigin Identity Providerのクライアントを提供する。
//
// クライアントID、コールバックURL、環境名、トークンストレージから
// 1つのAuthハンドルを生成し、連携済みソーシャルアカウントの取得と、
// Twitter、Spotify、TikTokの各プラットフォーム用クライアントの取得を行う。
// セッショントークンはStorageに保持し、永続化は行わない。
package origin
