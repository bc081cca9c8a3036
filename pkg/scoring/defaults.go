package scoring

// DefaultFactors returns the standard factor set with default constants.
func DefaultFactors() []Factor {
	c := Defaults()
	return []Factor{
		&OpportunityFactor{
			CompetitivenessShare: c.OpportunityCompetitivenessShare,
			OpenSeatBonus:        c.OpportunityOpenSeatBonus,
		},
		&MobilizationFactor{
			Baseline:     c.MobilizationBaseline,
			TightBonus:   c.MobilizationTightBonus,
			CloseBonus:   c.MobilizationCloseBonus,
			SafePenalty:  c.MobilizationSafePenalty,
			HistoryBonus: c.MobilizationHistoryBonus,
			CycleWindow:  c.MobilizationCycleWindow,
			MinCycles:    c.MobilizationHistoryMinCycles,
		},
		&DonorCapacityFactor{
			Baseline:             c.DonorBaseline,
			CompetitivenessShare: c.DonorCompetitivenessShare,
			CrowdedFieldBonus:    c.DonorCrowdedFieldBonus,
			SoleFilerBonus:       c.DonorSoleFilerBonus,
			OpenSeatBonus:        c.DonorOpenSeatBonus,
		},
		&TrendingFactor{
			Baseline: c.TrendingBaseline,
		},
	}
}
