package crosslight

// GreenSeconds converts an accumulated vehicle count into the total green
// duration in ticks. The result is BaseGreenSeconds plus the extra of the
// highest extension bucket whose threshold the count reaches; buckets are
// not additive. Pure and total: any non-negative count maps to a positive
// duration, and the mapping is monotonic non-decreasing.
func (c Config) GreenSeconds(count int) int {
	base, extra := c.GreenSplit(count)
	return base + extra
}

// GreenSplit returns the base and extra components of the green duration
// separately, as shown on the display ("NSG 10+20s").
func (c Config) GreenSplit(count int) (base, extra int) {
	base = c.BaseGreenSeconds

	// Extensions are sorted ascending; the last matching bucket wins.
	for _, ext := range c.Extensions {
		if count >= ext.Threshold {
			extra = ext.ExtraSeconds
		}
	}

	return base, extra
}
