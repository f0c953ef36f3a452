// Package business holds the shop profile used in notification emails and in the
// fallback message shown when email delivery is unavailable.
package business

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Address struct {
	Street  string `yaml:"street"`
	Area    string `yaml:"area"`
	City    string `yaml:"city"`
	State   string `yaml:"state"`
	Pincode string `yaml:"pincode"`
}

type Contact struct {
	Phone          string `yaml:"phone"`
	AlternatePhone string `yaml:"alternate_phone,omitempty"`
	Email          string `yaml:"email,omitempty"`
	WhatsApp       string `yaml:"whatsapp,omitempty"`
}

type Info struct {
	Name     string  `yaml:"name"`
	Tagline  string  `yaml:"tagline"`
	TimeZone string  `yaml:"time_zone"`
	Address  Address `yaml:"address"`
	Contact  Contact `yaml:"contact"`
}

// Default returns the built-in profile.
func Default() Info {
	return Info{
		Name:     "Seven Star Lining Works",
		Tagline:  "Premium Motorcycle Accessories in Chennai",
		TimeZone: "Asia/Kolkata",
		Address: Address{
			Street:  "No 72, 139, Eldams Rd",
			Area:    "Subbarayan Nagar, Teynampet",
			City:    "Chennai",
			State:   "Tamil Nadu",
			Pincode: "600018",
		},
		Contact: Contact{
			Phone:    "+91 9790912314",
			Email:    "info@sevenstarliningworks.com",
			WhatsApp: "+919790912314",
		},
	}
}

// Load returns the default profile overlaid with the YAML file at path.
// An empty path returns the default profile.
func Load(path string) (Info, error) {
	info := Default()
	if path == "" {
		return info, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read business info %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("failed to parse business info %s: %w", path, err)
	}
	if _, err := time.LoadLocation(info.TimeZone); err != nil {
		return info, fmt.Errorf("invalid time zone %q: %w", info.TimeZone, err)
	}
	return info, nil
}

// Location resolves the profile's time zone, falling back to UTC.
func (i Info) Location() *time.Location {
	loc, err := time.LoadLocation(i.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AddressLines returns the postal address as two display lines.
func (i Info) AddressLines() (string, string) {
	a := i.Address
	return fmt.Sprintf("%s, %s", a.Street, a.Area),
		fmt.Sprintf("%s, %s %s", a.City, a.State, a.Pincode)
}
