package business

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileReturnsDefault(t *testing.T) {
	info, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), info)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "business.yaml")
	content := "name: Test Works\ncontact:\n  phone: \"+91 11111 22222\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	info, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Works", info.Name)
	assert.Equal(t, "+91 11111 22222", info.Contact.Phone)
	assert.Equal(t, Default().Address, info.Address)
}

func TestLoadRejectsBadTimeZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "business.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_zone: Mars/Olympus\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAddressLines(t *testing.T) {
	first, second := Default().AddressLines()
	assert.Equal(t, "No 72, 139, Eldams Rd, Subbarayan Nagar, Teynampet", first)
	assert.Equal(t, "Chennai, Tamil Nadu 600018", second)
}

func TestDefaultMatchesShopProfile(t *testing.T) {
	info := Default()
	assert.Equal(t, "Seven Star Lining Works", info.Name)
	assert.Equal(t, "Premium Motorcycle Accessories in Chennai", info.Tagline)
	assert.Equal(t, Address{
		Street:  "No 72, 139, Eldams Rd",
		Area:    "Subbarayan Nagar, Teynampet",
		City:    "Chennai",
		State:   "Tamil Nadu",
		Pincode: "600018",
	}, info.Address)
	assert.Equal(t, Contact{
		Phone:    "+91 9790912314",
		Email:    "info@sevenstarliningworks.com",
		WhatsApp: "+919790912314",
	}, info.Contact)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Asia/Kolkata", Default().Location().String())
	assert.Equal(t, "UTC", Info{TimeZone: "nowhere"}.Location().String())
}
