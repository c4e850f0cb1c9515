package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testRates = RateSchedule{
	WeekdayNightly: 110_00,
	WeekendNightly: 230_00,
	HolidayNightly: 280_00,
}

func TestClassifyNight(t *testing.T) {
	t.Parallel()

	holidays := NewHolidaySet(Date(2024, 1, 16), Date(2024, 1, 19))

	tests := []struct {
		name  string
		night time.Time
		want  Tier
	}{
		{name: "monday is weekday", night: Date(2024, 1, 15), want: TierWeekday},
		{name: "thursday is weekday", night: Date(2024, 1, 18), want: TierWeekday},
		{name: "friday is weekend", night: Date(2024, 1, 26), want: TierWeekend},
		{name: "saturday is weekend", night: Date(2024, 1, 27), want: TierWeekend},
		{name: "sunday is weekday", night: Date(2024, 1, 28), want: TierWeekday},
		{name: "holiday tuesday", night: Date(2024, 1, 16), want: TierHoliday},
		{name: "holiday beats friday", night: Date(2024, 1, 19), want: TierHoliday},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, ClassifyNight(tc.night, holidays))
		})
	}
}

func TestClassifyNightNilHolidays(t *testing.T) {
	t.Parallel()

	require.Equal(t, TierWeekend, ClassifyNight(Date(2024, 1, 19), nil))
	require.Equal(t, TierWeekday, ClassifyNight(Date(2024, 1, 15), nil))
}

func TestPriceStayScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		holidays HolidaySet
		want     Breakdown
	}{
		{
			name:     "two weekday nights",
			checkIn:  Date(2024, 1, 15),
			checkOut: Date(2024, 1, 17),
			holidays: nil,
			want: Breakdown{
				WeekdayNights: 2, TotalNights: 2,
				WeekdaySubtotal: 220_00, TotalPrice: 220_00,
			},
		},
		{
			name:     "two weekend nights",
			checkIn:  Date(2024, 1, 19),
			checkOut: Date(2024, 1, 21),
			holidays: nil,
			want: Breakdown{
				WeekendNights: 2, TotalNights: 2,
				WeekendSubtotal: 460_00, TotalPrice: 460_00,
			},
		},
		{
			name:     "mixed week",
			checkIn:  Date(2024, 1, 16),
			checkOut: Date(2024, 1, 20),
			holidays: nil,
			want: Breakdown{
				WeekdayNights: 3, WeekendNights: 1, TotalNights: 4,
				WeekdaySubtotal: 330_00, WeekendSubtotal: 230_00, TotalPrice: 560_00,
			},
		},
		{
			name:     "holiday overrides weekday",
			checkIn:  Date(2024, 1, 16),
			checkOut: Date(2024, 1, 17),
			holidays: NewHolidaySet(Date(2024, 1, 16)),
			want: Breakdown{
				HolidayNights: 1, TotalNights: 1,
				HolidaySubtotal: 280_00, TotalPrice: 280_00,
			},
		},
		{
			name:     "holiday on checkout date has no effect",
			checkIn:  Date(2024, 1, 15),
			checkOut: Date(2024, 1, 17),
			holidays: NewHolidaySet(Date(2024, 1, 17)),
			want: Breakdown{
				WeekdayNights: 2, TotalNights: 2,
				WeekdaySubtotal: 220_00, TotalPrice: 220_00,
			},
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := PriceStay(tc.checkIn, tc.checkOut, testRates, tc.holidays)
			require.NoError(t, err)
			require.Equal(t, tc.want, *got)
		})
	}
}

func TestPriceStayInvalidRange(t *testing.T) {
	t.Parallel()

	_, err := PriceStay(Date(2024, 1, 17), Date(2024, 1, 17), testRates, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = PriceStay(Date(2024, 1, 17), Date(2024, 1, 16), testRates, nil)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestPriceStayNightConservation(t *testing.T) {
	t.Parallel()

	holidays := NewHolidaySet(Date(2024, 4, 1), Date(2024, 5, 1), Date(2024, 5, 10))

	checkIn := Date(2024, 3, 20)
	checkOut := Date(2024, 6, 28) // 100 nights, crossing months

	got, err := PriceStay(checkIn, checkOut, testRates, holidays)
	require.NoError(t, err)

	require.Equal(t, 100, got.TotalNights)
	require.Equal(t, got.TotalNights, got.WeekdayNights+got.WeekendNights+got.HolidayNights)
	require.Equal(t, got.TotalPrice, got.WeekdaySubtotal+got.WeekendSubtotal+got.HolidaySubtotal)
	require.Equal(t, Cents(got.WeekdayNights)*testRates.WeekdayNightly, got.WeekdaySubtotal)
	require.Equal(t, Cents(got.WeekendNights)*testRates.WeekendNightly, got.WeekendSubtotal)
	require.Equal(t, Cents(got.HolidayNights)*testRates.HolidayNightly, got.HolidaySubtotal)
	require.Equal(t, 3, got.HolidayNights)
}

func TestPriceStayMonotonicity(t *testing.T) {
	t.Parallel()

	holidays := NewHolidaySet(Date(2024, 2, 5))
	checkIn := Date(2024, 1, 29)

	prev, err := PriceStay(checkIn, checkIn.AddDate(0, 0, 1), testRates, holidays)
	require.NoError(t, err)

	for nights := 2; nights <= 30; nights++ {
		checkOut := checkIn.AddDate(0, 0, nights)

		got, err := PriceStay(checkIn, checkOut, testRates, holidays)
		require.NoError(t, err)

		addedNight := checkOut.AddDate(0, 0, -1)
		addedRate := testRates.ForTier(ClassifyNight(addedNight, holidays))

		require.Equal(t, prev.TotalNights+1, got.TotalNights)
		require.Equal(t, prev.TotalPrice+addedRate, got.TotalPrice)

		prev = got
	}
}

func TestPriceStayDeterminism(t *testing.T) {
	t.Parallel()

	holidays := NewHolidaySet(Date(2024, 8, 6))

	first, err := PriceStay(Date(2024, 8, 1), Date(2024, 8, 15), testRates, holidays)
	require.NoError(t, err)

	second, err := PriceStay(Date(2024, 8, 1), Date(2024, 8, 15), testRates, holidays)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestPriceStayIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2024, 1, 15, 18, 30, 0, 0, time.FixedZone("CST", -6*60*60))
	checkOut := time.Date(2024, 1, 17, 11, 0, 0, 0, time.UTC)

	got, err := PriceStay(checkIn, checkOut, testRates, nil)
	require.NoError(t, err)

	want, err := PriceStay(Date(2024, 1, 16), Date(2024, 1, 17), testRates, nil)
	require.NoError(t, err)

	// 18:30 CST on Jan 15 is already Jan 16 in UTC.
	require.Equal(t, want, got)
}

func TestRateScheduleValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testRates.Validate())

	bad := RateSchedule{WeekdayNightly: -1, WeekendNightly: 230_00, HolidayNightly: 280_00}
	require.ErrorIs(t, bad.Validate(), ErrNegativeRate)

	bad = RateSchedule{WeekdayNightly: 110_00, WeekendNightly: -5, HolidayNightly: 280_00}
	require.ErrorIs(t, bad.Validate(), ErrNegativeRate)

	bad = RateSchedule{WeekdayNightly: 110_00, WeekendNightly: 230_00, HolidayNightly: -1}
	require.ErrorIs(t, bad.Validate(), ErrNegativeRate)
}
