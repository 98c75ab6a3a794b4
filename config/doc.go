// Package config 提供 VoxBridge 的配置管理功能。
//
// 配置在进程启动时由 Loader 构建一次（默认值、YAML 文件、.env 文件、
// 兼容的无前缀环境变量与 VOXBRIDGE_ 前缀环境变量），之后作为只读结构
// 传入各组件，运行期间不再读取环境变量。
package config
