package models

// Filter widget metadata shared by every Datastore implementation.

func DefaultSizeOptions() []SizeOption {
	return []SizeOption{
		{ID: 1, Name: "XS", Label: "Extra Small"},
		{ID: 2, Name: "S", Label: "Small"},
		{ID: 3, Name: "M", Label: "Medium"},
		{ID: 4, Name: "L", Label: "Large"},
		{ID: 5, Name: "XL", Label: "Extra Large"},
		{ID: 6, Name: "XXL", Label: "Double Extra Large"},
		{ID: 7, Name: "Free Size", Label: "Free Size"},
	}
}

func DefaultRatingOptions() []RatingOption {
	return []RatingOption{
		{ID: "4-up", Label: "4★ & above"},
		{ID: "3-up", Label: "3★ & above"},
		{ID: "2-up", Label: "2★ & above"},
		{ID: "1-up", Label: "1★ & above"},
	}
}
