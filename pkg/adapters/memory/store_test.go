package memory_test

import (
	"testing"

	"github.com/FabioCLima/healthbot-project/pkg/adapters/memory"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}
