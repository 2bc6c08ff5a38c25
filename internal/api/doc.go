// Package api provides the quote API client.
//
// Quotes come from the Yahoo Finance chart endpoint, one request per symbol:
//
//	https://query1.finance.yahoo.com/v8/finance/chart/<TICKER>
//
// The client only classifies transport outcomes (FetchChart) and decodes the
// chart payload (ParseChart). It keeps no state between calls.
package api
