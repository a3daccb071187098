package claims_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/claims"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
)

func TestExtractFiltersShortBoilerplateAndMetadata(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{
		"- ONDC was launched by the Government of India in 2022\n" +
			"- too short\n" +
			"- All rights reserved by the publisher across every region\n" +
			"- Written by John Smith on the technology desk\n" +
			"not a bullet line\n",
	}}
	e := claims.NewExtractor(fake)

	longEnough := "This page discusses ONDC at great length, covering its origin, adoption, and regulatory context across several paragraphs of text so that it clears the minimum source length filter."
	got, err := e.Extract(context.Background(), longEnough, "https://a.example")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ONDC was launched by the Government of India in 2022", got[0].Claim)
	require.Equal(t, "https://a.example", got[0].SourceURL)
}

func TestExtractSkipsShortDocuments(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{"- should never be reached because the document is too short"}}
	e := claims.NewExtractor(fake)

	got, err := e.Extract(context.Background(), "too short", "https://a.example")
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 0, fake.Calls())
}

func TestExtractPropagatesOracleError(t *testing.T) {
	fake := &oracle.Fake{Err: context.DeadlineExceeded}
	e := claims.NewExtractor(fake)

	longEnough := "This page discusses something at great length across many sentences so it clears the minimum source text length filter easily."
	_, err := e.Extract(context.Background(), longEnough, "https://a.example")
	require.Error(t, err)
}
