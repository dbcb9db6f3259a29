// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testfixture provides a small flattened IOS-XR configuration
// shared by the stage tests.
package testfixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/overlay-extract/internal/stanza"
)

// Config is a "show running-config formal" style document: one line per
// setting, except policy-map and route-policy blocks.
//
// Bundle-Ether7 has sub-interfaces .100 (VRF-CUST-A-01), .200
// (VRF-CUST-B-02), .300 (no VRF) and .1000 (VRF-CUST-D-01).
// Bundle-Ether70.100 shares the prefix but not the bundle.
const Config = `hostname PE1
!
vrf VRF-CUST-A-01
vrf VRF-CUST-A-01 description Customer A primary
vrf VRF-CUST-A-01 address-family ipv4 unicast import route-target 65000:101
vrf VRF-CUST-B-02
vrf VRF-CUST-B-02 address-family ipv4 unicast import route-target 65000:202
vrf VRF-CUST-C-01
vrf VRF-CUST-D-01
!
interface Bundle-Ether7 description core-uplink
interface Bundle-Ether7.100 vrf VRF-CUST-A-01
interface Bundle-Ether7.100 ipv4 address 10.0.0.1 255.255.255.252
interface Bundle-Ether7.100 service-policy input VRF-CUST-A-01-IN
interface Bundle-Ether7.100 encapsulation dot1q 100
interface Bundle-Ether7.200 vrf VRF-CUST-B-02
interface Bundle-Ether7.200 ipv4 address 10.0.1.1 255.255.255.252
interface Bundle-Ether7.300 ipv4 address 198.51.100.1 255.255.255.0
interface Bundle-Ether7.1000 vrf VRF-CUST-D-01
interface Bundle-Ether70.100 vrf VRF-CUST-C-01
!
router static vrf VRF-CUST-A-01 address-family ipv4 unicast 192.0.2.0/24 10.0.0.2
router bgp 65000 vrf VRF-CUST-A-01 rd 65000:101
router bgp 65000 vrf VRF-CUST-A-01 neighbor 10.0.0.2 route-policy CUST-A-IN in
router hsrp interface Bundle-Ether7.100 address-family ipv4 hsrp 1 address 10.0.0.3
router hsrp interface Bundle-Ether7.1000 address-family ipv4 hsrp 2 address 10.9.0.3
!
policy-map VRF-CUST-A-01-IN
 class class-default
  police rate 100 mbps
  !
 !
 end-policy-map
!
route-policy CUST-A-IN
  pass
end-policy
!
route-policy CUST-B-IN
  drop
end-policy
!
end
`

// Doc returns Config as a Document.
func Doc() *stanza.Document {
	return FromText(Config)
}

// FromText splits text into a Document.
func FromText(text string) *stanza.Document {
	return stanza.FromLines(strings.Split(strings.TrimSuffix(text, "\n"), "\n"))
}

// WriteConfig writes Config into a temp directory and returns its path.
func WriteConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "running-config.txt")
	if err := os.WriteFile(path, []byte(Config), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
