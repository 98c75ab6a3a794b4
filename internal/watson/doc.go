// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 watson 提供访问 IBM Watson REST 服务的最小客户端。

# 概述

translator 与 speech 包中的 Watson 后端都构建在本包之上。Client 负责
拼接基础地址与默认查询参数、附加默认请求头、调用 Authenticator
签名请求，并把远端错误统一转换为携带远端 HTTP 状态码的 *types.Error。

# 核心类型

  - IAMAuthenticator：用 IBM Cloud API Key 换取 IAM Bearer Token，
    在过期前 60 秒内自动刷新，互斥锁保护缓存。
  - BearerAuthenticator：使用外部提供的固定令牌。
  - Client：REST 客户端，提供 Do（原始响应，用于音频流）、
    DoJSON 与 DoText（JSON 解码）。

# 错误语义

  - 远端返回 >= 400：Code 为 UPSTREAM_ERROR，HTTPStatus 为远端状态码，
    Message 取自响应体中的 error / errorMessage / message 字段。
  - 传输失败：HTTPStatus 为 500；超时时 Code 为 UPSTREAM_TIMEOUT。
  - 每次请求创建一个 OpenTelemetry 客户端 Span。
*/
package watson
