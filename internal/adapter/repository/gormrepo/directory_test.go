package gormrepo

import (
	"context"
	"testing"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/notification"
)

func TestClientDirectory_Lookup(t *testing.T) {
	db := openTestDB(t)
	if err := db.Create(&client.Client{ClientID: "c1", Name: "Ana"}).Error; err != nil {
		t.Fatal(err)
	}
	dir := NewClientDirectory(db)

	c, err := dir.Lookup(context.Background(), "c1")
	if err != nil || c == nil || c.Name != "Ana" {
		t.Fatalf("Lookup: %+v %v", c, err)
	}
	c, err = dir.Lookup(context.Background(), "missing")
	if err != nil || c != nil {
		t.Fatalf("unknown client: want (nil, nil), got %+v %v", c, err)
	}
}

func TestNotificationOutbox_SendQueuesPendingRow(t *testing.T) {
	db := openTestDB(t)
	out := NewNotificationOutbox(db)
	ctx := context.Background()

	if err := out.Send(ctx, "c1", notification.KindPenalty, "late fee applied"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := out.Send(ctx, "c1", notification.KindReminder, "due soon"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := out.ListByClient(ctx, "c1", 10)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByClient: %d %v", len(got), err)
	}
	for _, n := range got {
		if n.Status != notification.StatusPending || len(n.NotificationID) != 32 {
			t.Fatalf("unexpected row: %+v", n)
		}
	}
	if limited, _ := out.ListByClient(ctx, "c1", 1); len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}
