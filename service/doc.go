// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 service 提供翻译与语音合成的服务门面（Facade）。

# 概述

启动时 New 从只读的 config.Config 解析凭证，为翻译与语音两种能力
各构建一个 Handle。凭证缺失不会导致启动失败，对应能力被标记为
缺失，首次调用时才返回 ErrMissingCredentials。

# 核心类型

  - Handle[T]：后端客户端加能力存在标记，构建后不可变。
  - Credentials：ResolveCredentials 的解析结果。
  - Facade：ListModels、Identify、ListIdentifiableLanguages、
    Translate、ListVoices、Synthesize 六个操作，原样透传，无重试。
  - Recorder：上游调用观测接口，由 internal/metrics.Collector 实现。

# 特殊行为

语音能力缺失时 ListVoices 返回内置的 FallbackVoice，不返回错误；
Synthesize 则返回 ErrMissingCredentials。
*/
package service
