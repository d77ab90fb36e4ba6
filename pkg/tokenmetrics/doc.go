// Package tokenmetrics is a client for the Token Metrics REST API.
//
// A Client owns its configuration and exposes one facade per API resource
// (Tokens, HourlyOHLCV, TraderGrades, TradingSignals, AIAgent, ...). Each
// facade call is a single authenticated request; the JSON body is returned
// verbatim as an Envelope. Calls are never retried.
//
//	client, err := tokenmetrics.New(os.Getenv("TMAI_API_KEY"))
//	if err != nil {
//		return err
//	}
//	env, err := client.Tokens.Get(ctx, &tokenmetrics.TokensOptions{
//		TokenFilter: tokenmetrics.TokenFilter{Symbol: "BTC,ETH"},
//	})
package tokenmetrics
