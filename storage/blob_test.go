package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "nested id with version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/hotels/grand_palace/room/3/abc-123.jpg",
			want: "hotels/grand_palace/room/3/abc-123",
		},
		{
			name: "nested id without version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/cities/addis_ababa/attraction/7/def-456.png",
			want: "cities/addis_ababa/attraction/7/def-456",
		},
		{
			name: "flat id",
			url:  "https://res.cloudinary.com/demo/image/upload/v99/avatar.webp",
			want: "avatar",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/profile/12/ghi-789",
			want: "profile/12/ghi-789",
		},
		{
			name: "segment starting with v but not a version",
			url:  "https://res.cloudinary.com/demo/image/upload/venues/9/jkl.jpg",
			want: "venues/9/jkl",
		},
		{
			name: "no upload marker",
			url:  "https://example.com/images/photo.jpg",
			want: "",
		},
		{
			name: "empty tail",
			url:  "https://res.cloudinary.com/demo/image/upload/",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, publicIDFromURL(tc.url))
		})
	}
}
