// Package domain models the disaster-relief records collected by the intake
// wizard and listed by the directory view.
//
// # Record Store
//
// Persistence lives in an external managed backend (Supabase). The backend
// holds one reference collection of cities ("cidades": id, nome) and one
// collection per category, each row carrying a "cidade_id" foreign reference
// and a "created_at" timestamp set by the backend:
//
//	abrigo        -> abrigos
//	doacao        -> pontos_doacao
//	desaparecido  -> desaparecidos
//	alimentacao   -> pontos_alimentacao
//	comunidade    -> comunidades
//	voluntario    -> voluntarios
//
// This package never talks to the backend directly; adapters implement
// [RecordStore] and return rows as raw JSON objects that are decoded into the
// typed category records ([Shelter], [DonationPoint], ...).
//
// # Form Conventions
//
// Raw form values keep the browser's shape: a field name submitted once is a
// scalar, a field name submitted several times (checkbox groups) is a list in
// order of appearance. See [CollectFields].
//
// Field names and storage columns mostly coincide. The exceptions are mapped
// by [DefaultMapping]:
//
//	refeicao    -> refeicoes
//	habilidade  -> habilidades
//	ultima_vez  -> ultima_vez_visto
//	saude       -> condicao_saude
//
// The fields recursos, aceita, refeicao, necessidades and habilidade are
// always stored as lists, even when exactly one option was checked.
//
// Empty values and the PIX placeholder option "— Não recebe PIX —" are never
// written to the store and never printed in a summary.
//
// # Phone Numbers
//
// Contact numbers are free text typed by volunteers, e.g. "(32) 99999-8888".
// WhatsApp links strip everything but digits; numbers with at least ten
// digits keep their last eleven and gain the Brazilian country code 55.
// Shorter numbers are linked as typed. See [WhatsAppNumber].
package domain
