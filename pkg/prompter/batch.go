package prompter

import (
	"context"
	"fmt"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/composer"
)

var ErrInvalidBatchSize = fmt.Errorf("batch size must be between 1 and %d", MaxBatchSize)

// GenerateBatch runs count compositions on the shared worker pool. Results are
// in submission order. The first failure fails the whole batch.
func (p *Prompter) GenerateBatch(ctx context.Context, mode composer.Mode, sel category.Selection, count int) ([]GeneratedPrompt, error) {
	if count < 1 || count > MaxBatchSize {
		return nil, ErrInvalidBatchSize
	}

	group := p.batchPool.NewGroup()
	for range count {
		group.SubmitErr(func() (GeneratedPrompt, error) {
			return p.Generate(ctx, mode, sel)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}
