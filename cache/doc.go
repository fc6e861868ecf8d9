// 版权所有 2026 PromptFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供 Prompt 定义的本地 LRU 缓存，支持 TTL 过期、
stale-while-revalidate（SWR）宽限期服务与 single-flight 刷新协调，
避免每次调用都产生一次网络往返。

# 概述

Prompt 定义由远端 Prompt 存储拉取，拉取成功后写入缓存。条目在 TTL 内
视为新鲜；TTL 过后、宽限期内仍可返回（stale-but-usable），由调用方
决定是否后台刷新；超过宽限期的条目按未命中处理并被丢弃。

# 核心接口

  - Cache[T]：泛型键值存储，Get/Set/Delete/DeleteByPrompt 操作。
  - Entry[T]：缓存条目，TTL 在写入时固定，读取不延长。
  - IsFresh/IsStale：只读判定，不触碰 LRU 顺序。
  - IsRefreshing/StartRefresh/EndRefresh：single-flight 刷新标记。
  - GenerateKey：稳定的键格式 prompt:{name}:v{n} | prompt:{name}:{label} | prompt:{name}:latest。

# 主要能力

  - LRU：侵入式双向链表 + 索引表，O(1) 触碰与淘汰。
  - SWR：新鲜命中与宽限期命中都会刷新条目的最近使用位置。
  - 协作式刷新：缓存本身不调度刷新，只维护进行中的刷新键集合。
  - 容量 ≤ 0 时禁用缓存：Set 为空操作，Get 总是未命中。

# 使用方式

	c := cache.New[*PromptRecord](cache.DefaultConfig(), logger)
	key := cache.GenerateKey("greeting", cache.KeyOptions{Version: 2})
	if rec, ok := c.Get(key); ok { ... }
*/
package cache
