package bootstrap

import (
	"context"

	"github.com/bizdash/import-service/internal/application/importing"
	"github.com/bizdash/import-service/internal/domain/org"
	"github.com/bizdash/import-service/internal/domain/partner"
)

type partnerLister interface {
	ListAll(ctx context.Context) ([]partner.Partner, error)
}

// referenceListers projects the repositories onto the lookup collections the
// importers resolve against.
func referenceListers(units org.UnitRepository, employees org.EmployeeRepository, partners partnerLister) map[importing.Source]importing.Lister {
	return map[importing.Source]importing.Lister{
		importing.SourceUnits: importing.ListerFunc(func(ctx context.Context) ([]importing.Entry, error) {
			list, err := units.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]importing.Entry, 0, len(list))
			for _, u := range list {
				out = append(out, importing.Entry{ID: u.ID, Code: u.Code, Name: u.Name})
			}
			return out, nil
		}),
		importing.SourceEmployees: importing.ListerFunc(func(ctx context.Context) ([]importing.Entry, error) {
			list, err := employees.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]importing.Entry, 0, len(list))
			for _, e := range list {
				out = append(out, importing.Entry{ID: e.ID, Code: e.Code, Name: e.FullName})
			}
			return out, nil
		}),
		importing.SourcePartners: importing.ListerFunc(func(ctx context.Context) ([]importing.Entry, error) {
			list, err := partners.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]importing.Entry, 0, len(list))
			for _, p := range list {
				out = append(out, importing.Entry{ID: p.ID, Code: p.ShortName, Name: p.Name})
			}
			return out, nil
		}),
	}
}
