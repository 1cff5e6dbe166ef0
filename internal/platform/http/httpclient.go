// Package http は上流API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は上流API（LLMなど）呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTPS_PROXYなど）があれば経由する
//   - Dialer.Timeout: TCP接続のタイムアウト（5秒）
//   - Dialer.KeepAlive: TCP接続のキープアライブ間隔
//   - ForceAttemptHTTP2: カスタムDialContext使用時もHTTP/2を試行する
//   - MaxIdleConns / MaxIdleConnsPerHost: アイドル接続の全体上限とホスト毎の上限
//   - IdleConnTimeout: アイドル接続を保持する時間
//   - TLSHandshakeTimeout: TLSハンドシェイクの上限
//   - Client.Timeout: リクエスト全体の上限。0 なら呼び出し側の context に任せる
//
// http.DefaultClient はTransportの各タイムアウトが未設定のため使用しません。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
