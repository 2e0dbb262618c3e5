package services

import (
	"testing"
	"time"

	"bettrack/pkg/utils"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		span, ok := ExtractJSONObject(`{"teams":"A vs B"}`)
		require.True(t, ok)
		require.Equal(t, `{"teams":"A vs B"}`, span)
	})

	t.Run("object wrapped in prose and fences", func(t *testing.T) {
		text := "Here is the result:\n```json\n{\"sport\":\"Tennis\"}\n```\nDone."
		span, ok := ExtractJSONObject(text)
		require.True(t, ok)
		require.Equal(t, `{"sport":"Tennis"}`, span)
	})

	t.Run("braces inside strings do not close the object", func(t *testing.T) {
		text := `{"selection":"Over {2.5} goals","odds":"1.80"}`
		span, ok := ExtractJSONObject(text)
		require.True(t, ok)
		require.Equal(t, text, span)
	})

	t.Run("escaped quote inside string", func(t *testing.T) {
		text := `{"teams":"say \"hi\" }","odds":"2.00"}`
		span, ok := ExtractJSONObject(text)
		require.True(t, ok)
		require.Equal(t, text, span)
	})

	t.Run("no object present", func(t *testing.T) {
		_, ok := ExtractJSONObject("sorry, I cannot read this image")
		require.False(t, ok)
	})

	t.Run("unterminated object", func(t *testing.T) {
		_, ok := ExtractJSONObject(`{"teams":"A vs B"`)
		require.False(t, ok)
	})
}

func TestNormalizeBetFields(t *testing.T) {
	now := time.Date(2025, time.May, 2, 10, 0, 0, 0, time.UTC)

	t.Run("missing fields get defaults", func(t *testing.T) {
		fields := NormalizeBetFields(map[string]interface{}{}, now)
		require.Equal(t, "Unknown", fields.Teams)
		require.Equal(t, "Unknown", fields.Bookmaker)
		require.Equal(t, "1.00", fields.Odds)
		require.Equal(t, "0.00", fields.Stake)
		require.Equal(t, "pending", fields.Status)
		require.Equal(t, "2025-05-02", fields.Date)
		require.Equal(t, "Low", fields.Confidence)
	})

	t.Run("currency symbols stripped from numerics", func(t *testing.T) {
		fields := NormalizeBetFields(map[string]interface{}{
			"odds":  "$2.50",
			"stake": "£10.00",
		}, now)
		require.Equal(t, "2.50", fields.Odds)
		require.Equal(t, "10.00", fields.Stake)
	})

	t.Run("potential return recomputed from stake and odds", func(t *testing.T) {
		fields := NormalizeBetFields(map[string]interface{}{
			"odds":             "2.50",
			"stake":            "10.00",
			"potential_return": "999.99",
		}, now)
		require.Equal(t, "25.00", fields.PotentialReturn)
	})

	t.Run("model value kept when stake is zero", func(t *testing.T) {
		fields := NormalizeBetFields(map[string]interface{}{
			"odds":             "2.50",
			"potential_return": "12.34",
		}, now)
		require.Equal(t, "12.34", fields.PotentialReturn)
	})

	t.Run("unrecognized confidence coerced to Low", func(t *testing.T) {
		fields := NormalizeBetFields(map[string]interface{}{"confidence": "very high"}, now)
		require.Equal(t, "Low", fields.Confidence)

		fields = NormalizeBetFields(map[string]interface{}{"confidence": "Medium"}, now)
		require.Equal(t, "Medium", fields.Confidence)
	})
}

func TestParseModelReply(t *testing.T) {
	now := time.Date(2025, time.May, 2, 10, 0, 0, 0, time.UTC)

	t.Run("valid reply", func(t *testing.T) {
		fields, raw := parseModelReply(`{"teams":"Arsenal vs Chelsea","odds":"2.10","stake":"5"}`, now)
		require.Equal(t, "Arsenal vs Chelsea", fields.Teams)
		require.Equal(t, "10.50", fields.PotentialReturn)
		require.JSONEq(t, `{"teams":"Arsenal vs Chelsea","odds":"2.10","stake":"5"}`, string(raw))
	})

	t.Run("reply without JSON degrades to fallback", func(t *testing.T) {
		fields, raw := parseModelReply("I could not find a betting slip in this image.", now)
		require.Equal(t, "Unable to extract", fields.Teams)
		require.Equal(t, "Unable to extract", fields.Selection)
		require.Equal(t, "pending", fields.Status)
		require.Equal(t, "{}", string(raw))
	})

	t.Run("malformed JSON span degrades to fallback", func(t *testing.T) {
		fields, _ := parseModelReply(`{"teams": unquoted}`, now)
		require.Equal(t, "Unable to extract", fields.Teams)
	})
}

func TestDecodeImageDataURL(t *testing.T) {
	// "hi" in base64
	payload := "aGk="

	t.Run("bare base64 defaults to png", func(t *testing.T) {
		format, raw, err := decodeImageDataURL(payload)
		require.NoError(t, err)
		require.Equal(t, "png", format)
		require.Equal(t, []byte("hi"), raw)
	})

	t.Run("data URL prefix carries the subtype", func(t *testing.T) {
		format, raw, err := decodeImageDataURL("data:image/JPEG;base64," + payload)
		require.NoError(t, err)
		require.Equal(t, "jpeg", format)
		require.Equal(t, []byte("hi"), raw)
	})

	t.Run("invalid base64 is a validation error", func(t *testing.T) {
		_, _, err := decodeImageDataURL("not base64 at all!!!")
		require.ErrorIs(t, err, utils.ErrInvalidImage)
	})
}
