package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"

	"todo-web/models"
)

func TestDispatchRoutesEveryKind(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	res, err := s.Dispatch(ctx, Command{Kind: CommandAdd, Input: models.NewTaskInput{Title: "A", DueDate: "2024-01-05", Priority: "Low"}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if res.Task == nil || res.Task.Title != "A" || len(res.Tasks) != 1 {
		t.Fatalf("unexpected add result: %#v", res)
	}
	a := res.Task.ID

	res, err = s.Dispatch(ctx, Command{Kind: CommandAdd, Input: models.NewTaskInput{Title: "B", DueDate: "2024-01-01", Priority: "High"}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b := res.Task.ID

	if res, err = s.Dispatch(ctx, Command{Kind: CommandSortDate}); err != nil {
		t.Fatalf("sort date: %v", err)
	}
	if got := titles(res.Tasks); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("sort date result = %v", got)
	}

	if res, err = s.Dispatch(ctx, Command{Kind: CommandToggle, ID: b}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.Task != nil || !res.Tasks[0].Completed {
		t.Fatalf("unexpected toggle result: %#v", res)
	}

	if res, err = s.Dispatch(ctx, Command{Kind: CommandSortPriority}); err != nil {
		t.Fatalf("sort priority: %v", err)
	}
	if got := titles(res.Tasks); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("sort priority result = %v", got)
	}

	if res, err = s.Dispatch(ctx, Command{Kind: CommandRemove, ID: a}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := titles(res.Tasks); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("remove result = %v", got)
	}
}

func TestDispatchErrors(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Dispatch(context.Background(), Command{Kind: "archive"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := s.Dispatch(context.Background(), Command{Kind: CommandAdd}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("failed commands changed the sequence")
	}
}

func TestDispatchResultReflectsOwnCommand(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	const n = 32
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.Dispatch(ctx, Command{Kind: CommandAdd, Input: models.NewTaskInput{Title: fmt.Sprintf("T%d", i), DueDate: "2024-01-05", Priority: "Low"}})
			if err != nil {
				t.Errorf("add %d: %v", i, err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	lengths := make([]int, 0, n)
	for i, res := range results {
		if res.Task == nil || len(res.Tasks) == 0 {
			t.Fatalf("result %d is empty", i)
		}
		if last := res.Tasks[len(res.Tasks)-1]; last.ID != res.Task.ID {
			t.Fatalf("result %d ends with %s, not its own task %s", i, last.Title, res.Task.Title)
		}
		lengths = append(lengths, len(res.Tasks))
	}
	sort.Ints(lengths)
	for i, l := range lengths {
		if l != i+1 {
			t.Fatalf("expected each add to see a distinct sequence length, got %v", lengths)
		}
	}
}
