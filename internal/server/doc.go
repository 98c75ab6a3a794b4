// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 server 提供 HTTP 服务器生命周期管理，支持非阻塞启动、
基于 context 的等待与优雅关闭。

# 概述

本包通过 Manager 封装 net/http.Server，统一管理监听、服务、
关闭与错误传播流程。VoxBridge 的业务端口与 metrics 端口各持有
一个 Manager，由命令入口通过 errgroup 协同启停。

# 核心类型

  - Manager：HTTP 服务器管理器，持有 http.Server、net.Listener
    与异步错误通道，提供 Start/Wait/Shutdown 等生命周期方法。
  - Config：服务器配置，包含监听地址、读写超时、空闲超时、
    最大请求头大小与优雅关闭超时。WriteTimeout 为 0 时不限制，
    便于长音频流完整下发。

# 主要能力

  - 非阻塞启动：Start 在后台 goroutine 中运行服务。
  - 等待与关闭：Wait 在 ctx 结束或服务异常退出时触发优雅关闭，
    Shutdown 在配置的超时内完成请求排空与连接释放。
  - 配置转换：ConfigFromServer 将 config.ServerConfig 转换为
    指定端口的 Config。
  - 状态查询：IsRunning/Addr 提供运行状态与实际监听地址查询。
*/
package server
