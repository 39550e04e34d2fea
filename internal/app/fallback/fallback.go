// Package fallback holds the static dataset the public read paths serve when
// the database is unreachable, so catalog pages always have something to
// render. The provider is injected into services rather than read from a
// package-level variable so tests can substitute their own dataset.
package fallback

import (
	"time"

	"github.com/tarumajaya/umkm-backend/internal/app/model"
)

// Provider supplies the degraded-mode dataset
type Provider interface {
	Umkm() []model.Umkm
	Categories() []model.Category
}

// Static serves the bundled sample directory
type Static struct {
	umkm       []model.Umkm
	categories []model.Category
}

func NewStatic() *Static {
	categories := []model.Category{
		{ID: "fb-cat-1", Name: "Kuliner"},
		{ID: "fb-cat-2", Name: "Kerajinan"},
		{ID: "fb-cat-3", Name: "Fashion"},
		{ID: "fb-cat-4", Name: "Jasa"},
	}

	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	umkm := []model.Umkm{
		{
			ID:          "fb-umkm-1",
			Slug:        "warung-nasi-pak-budi",
			Name:        "Warung Nasi Pak Budi",
			CategoryID:  "fb-cat-1",
			Category:    &categories[0],
			Description: "Warung nasi tradisional dengan berbagai lauk pauk pilihan yang lezat dan harga terjangkau.",
			Address:     "Jl. Raya Tarumajaya No. 123, Tarumajaya",
			Logo:        "/placeholder-logo.png",
			Images:      model.StringArray{"/1.jpg", "/2.jpg"},
			Whatsapp:    "628123456789",
			Social: &model.SocialLinks{
				Instagram: "@warungnasipakbudi",
				Facebook:  "Warung Nasi Pak Budi",
			},
			Marketplace: &model.MarketplaceLinks{
				Tokopedia: "warung-nasi-pak-budi",
			},
			OwnerStory: "Pak Budi telah menjalankan warung ini selama 15 tahun dengan resep turun temurun.",
			Featured:   true,
			Location:   &model.Location{Lat: -6.2088, Lng: 106.8456},
			Products: model.ProductList{
				{Name: "Nasi Gudeg", Price: 15000, Description: "Nasi dengan gudeg khas Yogya"},
				{Name: "Nasi Rawon", Price: 18000, Description: "Nasi dengan rawon daging sapi"},
			},
			CreatedAt: day(4),
			UpdatedAt: day(4),
		},
		{
			ID:          "fb-umkm-2",
			Slug:        "kerajinan-bambu-sari",
			Name:        "Kerajinan Bambu Sari",
			CategoryID:  "fb-cat-2",
			Category:    &categories[1],
			Description: "Produsen kerajinan bambu berkualitas tinggi dengan desain modern dan tradisional.",
			Address:     "Jl. Bambu Raya No. 45, Tarumajaya",
			Logo:        "/placeholder-logo.png",
			Images:      model.StringArray{"/3.jpg"},
			Whatsapp:    "628987654321",
			Social: &model.SocialLinks{
				Instagram: "@kerajinanbambusari",
				Website:   "https://kerajinanbambu.com",
			},
			Marketplace: &model.MarketplaceLinks{
				Shopee:    "kerajinan-bambu-sari",
				Tokopedia: "bambu-sari-craft",
			},
			OwnerStory: "Sari memulai usaha kerajinan bambu dari hobi yang kemudian berkembang menjadi bisnis.",
			Featured:   true,
			Products: model.ProductList{
				{Name: "Keranjang Bambu", Price: 50000, Description: "Keranjang anyaman bambu ukuran sedang"},
				{Name: "Lampu Hias Bambu", Price: 75000, Description: "Lampu hias dengan desain unik dari bambu"},
			},
			CreatedAt: day(3),
			UpdatedAt: day(3),
		},
		{
			ID:          "fb-umkm-3",
			Slug:        "toko-kain-indah",
			Name:        "Toko Kain Indah",
			CategoryID:  "fb-cat-3",
			Category:    &categories[2],
			Description: "Menyediakan berbagai jenis kain berkualitas untuk kebutuhan fashion dan dekorasi.",
			Address:     "Jl. Tekstil No. 67, Tarumajaya",
			Logo:        "/placeholder-logo.png",
			Images:      model.StringArray{"/1.jpg", "/2.jpg", "/3.jpg"},
			Whatsapp:    "628111222333",
			Social: &model.SocialLinks{
				Instagram: "@kainindah",
				Facebook:  "Toko Kain Indah",
			},
			OwnerStory: "Usaha keluarga yang telah berjalan 3 generasi dalam bidang tekstil.",
			Featured:   false,
			Products: model.ProductList{
				{Name: "Kain Batik", Price: 120000, Description: "Kain batik motif tradisional"},
				{Name: "Kain Polos", Price: 45000, Description: "Kain polos berbagai warna"},
			},
			CreatedAt: day(2),
			UpdatedAt: day(2),
		},
		{
			ID:          "fb-umkm-4",
			Slug:        "bengkel-motor-jaya",
			Name:        "Bengkel Motor Jaya",
			CategoryID:  "fb-cat-4",
			Category:    &categories[3],
			Description: "Bengkel motor dengan mekanik berpengalaman dan suku cadang lengkap.",
			Address:     "Jl. Pesisir No. 12, Tarumajaya",
			Logo:        "/placeholder-logo.png",
			Whatsapp:    "628444555666",
			OwnerStory:  "Berdiri sejak 2010 dan melayani warga sekitar dengan harga bersahabat.",
			Featured:    false,
			Products: model.ProductList{
				{Name: "Servis Ringan", Price: 50000},
				{Name: "Ganti Oli", Price: 65000},
			},
			CreatedAt: day(1),
			UpdatedAt: day(1),
		},
	}

	return &Static{umkm: umkm, categories: categories}
}

// Umkm returns the fallback businesses, newest first
func (s *Static) Umkm() []model.Umkm {
	out := make([]model.Umkm, len(s.umkm))
	copy(out, s.umkm)
	return out
}

// Categories returns the fallback categories
func (s *Static) Categories() []model.Category {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}
