// Copyright (c) VoxBridge Authors.
// Licensed under the MIT License.

/*
包 translator 定义文本翻译能力的提供者接口，并提供 IBM Watson
Language Translator v3 实现。

# 核心类型

  - Provider：翻译后端接口，包含 ListModels、Identify、
    ListIdentifiableLanguages 与 Translate 四个操作。
  - WatsonProvider：基于 internal/watson 的 REST 实现，自动附加
    version 查询参数与 X-Watson-Technology-Preview、
    X-Watson-Learning-Opt-Out 请求头。
  - TextList：translate 请求的 text 字段，既可解码 JSON 字符串，
    也可解码字符串数组。

请求与响应结构的字段名与远端 JSON 保持一致，结果原样返回给调用方。
*/
package translator
