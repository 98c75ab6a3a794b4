// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
Package types 提供 VoxBridge 服务的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 service、api/handlers、
translator、speech 等上层模块提供统一的错误与上下文契约。

# 核心类型

  - Error / ErrorCode：结构化错误，含 HTTP 状态码、标题、描述与 Provider 标记
  - contextKey：请求级上下文键（request_id、trace_id）

# 主要能力

  - 错误工具链：NewError + WithCause / WithHTTPStatus / WithTitle / WithDescription
  - 错误提取：AsError / GetErrorCode / HTTPStatusOf（支持 errors.As 链式解包）
  - Context 传播：WithRequestID / RequestID、WithTraceID / TraceID
*/
package types
