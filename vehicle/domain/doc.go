// Package domain define contratos e tipos de domínio do gateway de decodificação de VIN.
//
// Este pacote não depende de net/http nem de implementações concretas
// (cache, limiter, cliente upstream). A intenção é permitir testes de unidade
// puros e desacoplar as regras do gateway dos detalhes de infraestrutura.
package domain
