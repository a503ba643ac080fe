package economy

import (
	"context"
	"testing"
)

func TestMemoryBankTransferFrom(t *testing.T) {
	bank := NewMemoryBank()
	bank.Deposit("alice", 100)

	if err := bank.TransferFrom(context.Background(), "alice", "bob", 40); err != nil {
		t.Fatalf("transfer from: %v", err)
	}

	aliceBalance, _ := bank.BalanceOf(context.Background(), "alice")
	bobBalance, _ := bank.BalanceOf(context.Background(), "bob")
	if aliceBalance != 60 {
		t.Fatalf("alice balance = %d, want 60", aliceBalance)
	}
	if bobBalance != 40 {
		t.Fatalf("bob balance = %d, want 40", bobBalance)
	}
}

func TestMemoryBankTransferFromInsufficient(t *testing.T) {
	bank := NewMemoryBank()
	bank.Deposit("alice", 10)

	if err := bank.TransferFrom(context.Background(), "alice", "bob", 40); err == nil {
		t.Fatal("expected insufficient balance error")
	}

	aliceBalance, _ := bank.BalanceOf(context.Background(), "alice")
	if aliceBalance != 10 {
		t.Fatalf("alice balance = %d, want 10 unchanged", aliceBalance)
	}
}

func TestMemoryBankRewardTransfer(t *testing.T) {
	bank := NewMemoryBank()
	if err := bank.Transfer(context.Background(), "winner", 10); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	balance, _ := bank.BalanceOf(context.Background(), "winner")
	if balance != 10 {
		t.Fatalf("winner balance = %d, want 10", balance)
	}
}
