package navigation

import "github.com/painel-crm/painel-crm/internal/ability"

// Default is the source navigation tree of the dashboard. It is shared
// across sessions; Prune copies instead of mutating it.
func Default() []Item {
	return []Item{
		{Title: "Dashboard", To: "/", Icon: "home"},
		{Title: "Calendário", To: "/calendar", Icon: "calendar",
			Action: ability.ActionRead, Subject: ability.SubjectCalendar},
		{Title: "Clientes", Icon: "briefcase",
			Action: ability.ActionRead, Subject: ability.SubjectClients,
			Children: []Item{
				{Title: "Lista", To: "/clients",
					Action: ability.ActionRead, Subject: ability.SubjectClients},
				{Title: "Cadastro", To: "/clients/new",
					Action: ability.ActionManage, Subject: ability.SubjectClients},
			}},
		{Title: "Equipe", Icon: "users",
			Children: []Item{
				{Title: "Usuários", To: "/users",
					Action: ability.ActionRead, Subject: ability.SubjectUsers},
				{Title: "Vendedores", To: "/salespeople",
					Action: ability.ActionRead, Subject: ability.SubjectSalespeople},
			}},
		{Title: "Formulários", To: "/forms", Icon: "file-text"},
		{Title: "Relatórios", To: "/reports", Icon: "bar-chart",
			Action: ability.ActionRead, Subject: ability.SubjectReports},
	}
}
