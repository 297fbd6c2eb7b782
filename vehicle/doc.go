// Package vehicle fornece os adapters HTTP (net/http) do gateway de VIN.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (decode, criação, throttle, concorrência) sem net/http
//   - infra: implementações concretas (janela fixa, token bucket, caches, cliente vPIC)
//   - vehicle (este pacote): rotas, validação de body, middlewares e tradução de erro para status
//
// Fluxo de um decode:
//
//  1. Middlewares: request id, access log, throttle por cliente (opcional), concorrência
//  2. Handler extrai o VIN do path e chama application.Gateway
//  3. O Gateway responde do cache ou consulta o limiter global e o upstream
//  4. O handler traduz o erro do domínio para status (400/404/409/429/502)
//
// Variáveis de ambiente do binário (cmd/gateway) controlam o comportamento,
// como RATE_MAX_CALLS, RATE_WINDOW, CACHE_BACKEND e CLIENT_RATE_ENABLED.
package vehicle
