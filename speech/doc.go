// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 speech 定义语音合成能力的提供者接口，并提供 IBM Watson
Text to Speech v1 与 Google Cloud Text-to-Speech 两种实现。

# 核心类型

  - Provider：语音后端接口，包含 ListVoices 与 Synthesize。
  - Audio：合成结果，ContentType 加上由调用方关闭的 Body 流。
  - WatsonProvider：基于 internal/watson 的 REST 实现，音频响应体
    不经缓冲直接返回，额外的查询参数原样转发。
  - GoogleProvider：基于 cloud.google.com/go/texttospeech 的 gRPC
    实现，accept 媒体类型映射为 AudioEncoding，gRPC 状态码映射为
    对应的 HTTP 状态码。

# 超时

ListVoices 受配置的 Timeout 约束；Synthesize 只受调用方 context
约束，客户端断开即停止转发。
*/
package speech
