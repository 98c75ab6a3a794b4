// Package tlsutil 提供访问远端翻译、语音与 IAM 端点时使用的 TLS 配置
// 与共享 HTTP 传输层（TLS 1.2+，仅 AEAD 密码套件）。
package tlsutil
