// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 VoxBridge HTTP API 的请求处理器实现。

# 概述

handlers 包把 HTTP 方法与路径绑定到服务门面的操作：提取请求参数，
调用 service.Facade，把结果原样编码为 JSON 或把音频流直接转发给
浏览器。所有 Handler 均遵循标准 net/http 接口。

# 核心类型

  - TranslatorHandler：/api/models、/api/identify、
    /api/identifiable_languages、/api/translate
  - SpeechHandler：/api/voces 与 /api/sintetizar（分块转发 + Flush）
  - IndexHandler：首页模板渲染（hide_header 控制页头）
  - HealthHandler：存活（/health）、按能力报告 present/absent/failing 的就绪（/ready）与版本（/version）
  - ErrorNormalizer：缺失凭证 → 401 + 本地化标题与描述
  - Response：错误响应信封（success + error + timestamp + request_id）
  - ErrorInfo：结构化错误信息，含 code、message、status、title、description

# 主要能力

  - 统一错误格式：WriteError / WriteErrorMessage，所有错误在此记录一次日志
  - 请求解析：DecodeJSONBody（空请求体放行，仅拒绝无法解析的 JSON）、ReadBody、IsJSONContent
  - ErrorCode → HTTP 状态码映射，远端状态码优先
  - 可扩展健康检查：CapabilityCheck 按能力探测上游
*/
package handlers
