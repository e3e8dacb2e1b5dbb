package xsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBooleanCodec(t *testing.T) {
	t.Run("writes_1_and_0", func(t *testing.T) {
		require.Equal(t, "1", FormatBoolean(true))
		require.Equal(t, "0", FormatBoolean(false))
	})

	t.Run("reads_both_spellings", func(t *testing.T) {
		for _, s := range []string{"1", "true"} {
			v, err := ParseBoolean(s)
			require.NoError(t, err)
			require.True(t, v)
		}
		for _, s := range []string{"0", "false"} {
			v, err := ParseBoolean(s)
			require.NoError(t, err)
			require.False(t, v)
		}
	})

	t.Run("rejects_other_forms", func(t *testing.T) {
		_, err := ParseBoolean("TRUE")
		require.ErrorIs(t, err, ErrBoolean)
	})
}

func TestIntegerCodec(t *testing.T) {
	t.Run("round_trips", func(t *testing.T) {
		v, err := ParseInteger(FormatInteger(-42))
		require.NoError(t, err)
		require.Equal(t, int64(-42), v)
	})

	t.Run("tolerates_leading_plus", func(t *testing.T) {
		v, err := ParseInteger("+42")
		require.NoError(t, err)
		require.Equal(t, int64(42), v)
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := ParseInteger("fourty-two")
		require.ErrorIs(t, err, ErrInteger)
	})
}

func TestDecimalCodec(t *testing.T) {
	t.Run("writes_shortest_form_without_exponent", func(t *testing.T) {
		require.Equal(t, "13.37", FormatDecimal(13.37))
		require.Equal(t, "0.0000001", FormatDecimal(0.0000001))
	})

	t.Run("round_trips_padded_forms", func(t *testing.T) {
		v, err := ParseDecimal("013.370")
		require.NoError(t, err)
		require.Equal(t, 13.37, v)

		v, err = ParseDecimal("+13.37")
		require.NoError(t, err)
		require.Equal(t, 13.37, v)

		v, err = ParseDecimal("13.0")
		require.NoError(t, err)
		require.Equal(t, 13.0, v)
	})

	t.Run("rejects_exponent_notation", func(t *testing.T) {
		_, err := ParseDecimal("1.337e1")
		require.ErrorIs(t, err, ErrDecimal)
	})
}

func TestDateTimeCodec(t *testing.T) {
	t.Run("truncates_subseconds_on_write", func(t *testing.T) {
		in := time.Date(2023, 4, 5, 6, 7, 8, 999_000_000, time.UTC)
		require.Equal(t, "2023-04-05T06:07:08Z", FormatDateTime(in))
	})

	t.Run("normalizes_offsets_to_utc", func(t *testing.T) {
		a, err := ParseDateTime("2023-04-05T08:07:08+02:00")
		require.NoError(t, err)
		b, err := ParseDateTime("2023-04-05T06:07:08Z")
		require.NoError(t, err)
		require.True(t, a.Equal(b))
	})

	t.Run("reads_missing_zone_as_utc", func(t *testing.T) {
		v, err := ParseDateTime("2023-04-05T06:07:08")
		require.NoError(t, err)
		require.Equal(t, "2023-04-05T06:07:08Z", FormatDateTime(v))
	})

	t.Run("truncates_subseconds_on_read", func(t *testing.T) {
		a, err := ParseDateTime("2023-04-05T06:07:08.123Z")
		require.NoError(t, err)
		b, err := ParseDateTime("2023-04-05T06:07:08.987Z")
		require.NoError(t, err)
		require.True(t, a.Equal(b))
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := ParseDateTime("last tuesday")
		require.ErrorIs(t, err, ErrDateTime)
	})
}

func TestDateAndTimeCodecs(t *testing.T) {
	t.Run("date_round_trips", func(t *testing.T) {
		in := time.Date(2023, 4, 5, 23, 59, 59, 0, time.UTC)
		v, err := ParseDate(FormatDate(in))
		require.NoError(t, err)
		require.Equal(t, "2023-04-05", FormatDate(v))
	})

	t.Run("date_tolerates_zone_designator", func(t *testing.T) {
		_, err := ParseDate("2023-04-05Z")
		require.NoError(t, err)
	})

	t.Run("time_round_trips_with_truncation", func(t *testing.T) {
		v, err := ParseTime("06:07:08.5")
		require.NoError(t, err)
		require.Equal(t, "06:07:08", FormatTime(v))
	})
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name     string
		datatype string
		a, b     string
		want     bool
	}{
		{"boolean_1_equals_true", Boolean, "1", "true", true},
		{"boolean_0_equals_false", Boolean, "0", "false", true},
		{"boolean_1_not_0", Boolean, "1", "0", false},
		{"integer_plus_sign", Integer, "42", "+42", true},
		{"integer_differs", Integer, "42", "43", false},
		{"decimal_padded", Decimal, "13.37", "013.370", true},
		{"decimal_trailing_point_zero", Decimal, "13", "13.0", true},
		{"datetime_offset_spellings", DateTime, "2023-04-05T06:07:08Z", "2023-04-05T08:07:08+02:00", true},
		{"datetime_subsecond_difference", DateTime, "2023-04-05T06:07:08.100Z", "2023-04-05T06:07:08.900Z", true},
		{"datetime_whole_second_difference", DateTime, "2023-04-05T06:07:08Z", "2023-04-05T06:07:09Z", false},
		{"string_exact_only", String, "a", "A", false},
		{"unknown_datatype_exact", "https://example.org/custom", "a", "a", true},
		{"unknown_datatype_differs", "https://example.org/custom", "a", "b", false},
		{"unparsable_falls_back_to_exact", Integer, "x", "x", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Equal(tc.datatype, tc.a, tc.b))
		})
	}
}
