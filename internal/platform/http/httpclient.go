// Package http は外部APIクライアント共通のHTTP設定を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はPolygon/Yahoo呼び出し用に設定されたHTTPクライアントを作成します。
// http.DefaultClientにはタイムアウトがないため、必ずこちらを使います。
// timeout はリクエスト全体の上限で、接続とTLSハンドシェイクには個別の短い上限を置きます。
// 収集ランは同じホストへ逐次リクエストするため、アイドル接続を保持して再利用します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
