package models

import (
	"testing"
	"time"
)

func TestShippingUpdateFields(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		status       ShippingStatus
		wantStamp    string
		wantNoStamps []string
	}{
		{"pending sets no stamps", ShippingPending, "", []string{"shippedAt", "deliveredAt"}},
		{"packed sets no stamps", ShippingPacked, "", []string{"shippedAt", "deliveredAt"}},
		{"shipped stamps shippedAt", ShippingShipped, "shippedAt", []string{"deliveredAt"}},
		{"delivered stamps deliveredAt", ShippingDelivered, "deliveredAt", []string{"shippedAt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ShippingUpdateFields(tt.status, "TRK-1", now)

			if set["shippingStatus"] != tt.status {
				t.Errorf("shippingStatus = %v, want %v", set["shippingStatus"], tt.status)
			}
			if set["trackingId"] != "TRK-1" {
				t.Errorf("trackingId = %v, want TRK-1", set["trackingId"])
			}
			if set["updatedAt"] != now {
				t.Errorf("updatedAt = %v, want %v", set["updatedAt"], now)
			}

			if tt.wantStamp != "" {
				if set[tt.wantStamp] != now {
					t.Errorf("%s = %v, want %v", tt.wantStamp, set[tt.wantStamp], now)
				}
			}
			for _, key := range tt.wantNoStamps {
				if _, ok := set[key]; ok {
					t.Errorf("%s must not be set for status %s", key, tt.status)
				}
			}
		})
	}
}

func TestShippingUpdateFieldsNeverUnsets(t *testing.T) {
	// the update is a pure $set document: an earlier shippedAt stamp must
	// survive a later move back to Packed
	set := ShippingUpdateFields(ShippingPacked, "", time.Now())
	for key := range set {
		switch key {
		case "shippingStatus", "trackingId", "updatedAt":
		default:
			t.Errorf("unexpected field %q in update for Packed", key)
		}
	}
}
