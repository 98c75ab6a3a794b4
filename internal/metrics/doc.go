// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 metrics 提供基于 Prometheus 的指标采集能力，覆盖 HTTP 入口、
远端翻译/语音服务调用与音频转发三个维度。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制，避免手动管理 Registry。所有指标按 namespace 隔离，
由 /metrics 端点通过 promhttp 暴露。

# 核心类型

  - Collector：指标收集器，同时满足 service.Recorder 与
    handlers.AudioRecorder 接口。

# 主要能力

  - HTTP 指标：请求总数、请求耗时、请求/响应体大小，
    按 method/path/status 分组，状态码归类为 2xx/3xx/4xx/5xx。
  - 上游调用指标：按 capability/operation/status 计数并记录耗时，
    status 取 success、远端状态码分类或 error。
  - 语音指标：按 content_type 累计转发的音频字节数，
    以及内置回退音色被返回的次数。
*/
package metrics
