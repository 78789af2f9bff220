package query

import (
	"regexp"
	"strings"
)

var (
	reLocation  = regexp.MustCompile(`(?i)\bin\s+([A-Za-z]+)\b`)
	reMissionID = regexp.MustCompile(`(?i)\bM\d+\b`)
	rePilotName = regexp.MustCompile(`(?i)\bpilot\s+([A-Za-z]+)\b`)
	reDroneID   = regexp.MustCompile(`(?i)\bdrone\s+([A-Za-z0-9]+)\b`)
)

// ExtractLocation pulls a location from phrases like "in Bangalore".
func ExtractLocation(text string) string {
	if m := reLocation.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractMissionID pulls a mission reference such as M001.
func ExtractMissionID(text string) string {
	return reMissionID.FindString(text)
}

// ExtractPilotName pulls the word after "pilot".
func ExtractPilotName(text string) string {
	if m := rePilotName.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDroneID pulls the token after "drone".
func ExtractDroneID(text string) string {
	if m := reDroneID.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// knownCapabilities are the sensor payloads operators ask for by name.
var knownCapabilities = []string{"thermal", "lidar", "rgb", "camera"}

// ExtractCapability finds the first known capability keyword in the request.
func ExtractCapability(text string) string {
	q := strings.ToLower(text)
	for _, c := range knownCapabilities {
		if strings.Contains(q, c) {
			return c
		}
	}
	return ""
}

// ExtractCerts collects certification keywords mentioned in the request.
func ExtractCerts(text string) []string {
	q := strings.ToLower(text)
	var certs []string
	if strings.Contains(q, "dgca") {
		certs = append(certs, "DGCA")
	}
	if strings.Contains(q, "bvlos") {
		certs = append(certs, "BVLOS")
	}
	if strings.Contains(q, "night") {
		certs = append(certs, "Night Ops")
	}
	return certs
}

// statusPhrases maps request keywords to canonical status values. Multi-word
// phrases come first so "on leave" wins over a bare "leave".
var statusPhrases = []struct {
	keyword string
	status  string
}{
	{"on leave", "On Leave"},
	{"maintenance", "Maintenance"},
	{"available", "Available"},
	{"busy", "Busy"},
	{"inactive", "Inactive"},
	{"assigned", "Assigned"},
}

// ExtractStatus finds the target status in an update request.
func ExtractStatus(text string) string {
	q := strings.ToLower(text)
	for _, sp := range statusPhrases {
		if strings.Contains(q, sp.keyword) {
			return sp.status
		}
	}
	return ""
}
