// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - FixedWindowLimiter: janela fixa global que protege o provedor upstream
//   - TokenBucketLimiter / ClientLimiterStore: token bucket usando golang.org/x/time/rate
//   - MemoryDecodeCache (ttlcache) e RedisDecodeCache (go-redis)
//   - MemoryRegistry, StaticOrgSet, MemoryOrgStore
//   - NHTSAClient: cliente HTTP do vPIC com retry opcional (cenkalti/backoff)
//   - ChanPool: semáforo simples para limite de concorrência
//   - MemoryStatsStore / RedisStatsStore: estatísticas dos desfechos do gateway
package infra
