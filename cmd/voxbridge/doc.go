// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
Package main 提供 VoxBridge 服务端程序入口。

# 概述

cmd/voxbridge 是 VoxBridge 的可执行入口，基于 cobra 提供 serve、
health 和 version 子命令。程序支持 YAML 配置文件与 .env 文件加载、
结构化日志（zap）、Prometheus 指标与 OpenTelemetry 追踪。

# 核心类型

  - Server：主服务器，组装服务门面、handlers 与路由，管理 HTTP、
    Metrics 双端口及优雅关闭
  - Middleware：HTTP 中间件函数签名 func(http.Handler) http.Handler
  - responseWriter：包装 http.ResponseWriter 以捕获状态码与字节数，
    并保持 Flush 可达，保证音频流逐块下发

# 主要能力

  - 子命令：serve（启动服务）、health（探测 /health）、version
  - 中间件链：Recovery、RequestID、OTelTracing、SecurityHeaders、
    RequestLogger、MetricsMiddleware、CORS、BodyLimit
  - 路由：前端页面与静态资源、翻译与语音 API、健康检查、版本信息
  - Metrics 服务器：独立端口暴露 /metrics，端口为 0 时挂在业务端口
  - 优雅关闭：信号取消 context，errgroup 协同关闭两个服务后释放门面
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
