package Compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePunch(t *testing.T) {
	cases := []struct {
		in   string
		want PunchTime
		ok   bool
	}{
		{"23:04:00 - O", PunchTime{23, 4, 0}, true},
		{"07:16", PunchTime{7, 16, 0}, true},
		{"07:16:09", PunchTime{7, 16, 9}, true},
		{"IN 06:45:00", PunchTime{6, 45, 0}, true},
		{"", PunchTime{}, false},
		{"   ", PunchTime{}, false},
		{"-", PunchTime{}, false},
		{"garbage", PunchTime{}, false},
		{"25:00:00", PunchTime{}, false},
		{"12:99", PunchTime{}, false},
	}
	for _, tc := range cases {
		got, ok := ParsePunch(tc.in)
		require.Equal(t, tc.ok, ok, "ParsePunch(%q) ok", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "ParsePunch(%q)", tc.in)
		}
	}
}

func TestPunchTimeOrdering(t *testing.T) {
	early := PunchTime{Hour: 6, Minute: 45}
	late := PunchTime{Hour: 15, Minute: 20}
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.False(t, early.Before(early))
	assert.Equal(t, 6*3600+45*60, early.Seconds())
	assert.Equal(t, "06:45:00", early.String())
}
