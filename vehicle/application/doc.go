// Package application contém os casos de uso do gateway de VIN.
//
// Ele depende apenas do pacote domain e não conhece net/http.
//
//   - Gateway.Decode: validação -> cache -> limiter -> upstream -> cache
//   - Gateway.CreateVehicle: validação de VIN/org -> duplicidade -> Decode -> registro
//   - ThrottleService.Decide: decisão allow/deny por cliente da borda HTTP
//   - Admission.Enter: vaga com timeout para limite de concorrência
package application
