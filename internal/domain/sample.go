package domain

const sampleDescription = "Passionate team of 4 designers working out of Bangalore with an experience of 4 years."

// SampleProfiles 空库时写入的示例数据
func SampleProfiles() []Profile {
	return []Profile{
		{
			Name:        "Epic Designs",
			Rating:      3.5,
			Description: sampleDescription,
			Projects:    57,
			Experience:  8,
			PriceRange:  PriceMedium,
			Phone1:      "+91 - 984532853",
			Phone2:      "+91 - 984532854",
			Location:    "Bangalore",
			Specialties: []string{"Residential", "Commercial", "Modern"},
			Portfolio: []string{
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
			},
		},
		{
			Name:        "Studio - D3",
			Rating:      4.5,
			Description: sampleDescription,
			Projects:    43,
			Experience:  6,
			PriceRange:  PriceHigh,
			Phone1:      "+91 - 984532853",
			Phone2:      "+91 - 984532854",
			Location:    "Bangalore",
			Specialties: []string{"Luxury", "Residential", "Contemporary"},
			Portfolio: []string{
				"https://images.unsplash.com/photo-1618221195710-dd6b41faaea8?w=400",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
			},
		},
		{
			Name:        "House of designs",
			Rating:      4.0,
			Description: "Creative studio specializing in modern and minimalist interior designs with 5 years of experience.",
			Projects:    32,
			Experience:  5,
			PriceRange:  PriceMedium,
			Phone1:      "+91 - 984532853",
			Phone2:      "+91 - 984532854",
			Location:    "Mumbai",
			Specialties: []string{"Minimalist", "Modern", "Residential"},
			Portfolio: []string{
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
			},
		},
	}
}
