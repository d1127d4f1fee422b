package ui

import (
	"html/template"
	"path"
	"strings"
)

// parseTemplates builds one template set per page: the layout, the shared
// components and the page's content. It panics on a malformed template.
func parseTemplates(funcs template.FuncMap) map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for name, content := range templates {
		if name == "layout" || strings.HasPrefix(name, "components/") {
			continue
		}
		tmpl := template.Must(template.New("layout").Funcs(funcs).Parse(templates["layout"]))
		for compName, compContent := range templates {
			if strings.HasPrefix(compName, "components/") {
				template.Must(tmpl.New(path.Base(compName)).Parse(compContent))
			}
		}
		template.Must(tmpl.New("content").Parse(content))
		pages[name] = tmpl
	}
	return pages
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} · Backoffice</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        .htmx-indicator { display: none; }
        .htmx-request .htmx-indicator { display: inline-block; }
        .htmx-request.htmx-indicator { display: inline-block; }
    </style>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Bare}}
    <main>{{template "content" .}}</main>
    {{else}}
    <div class="flex min-h-screen">
        <aside class="w-60 bg-white border-r">
            <a href="/dashboard/statistics" class="block px-6 py-5 text-xl font-bold text-indigo-600">Backoffice</a>
            <nav class="px-3 space-y-1">
                {{range .Nav}}
                <a href="{{.Href}}" class="flex items-center px-3 py-2 rounded-md text-sm font-medium {{if .Active}}bg-indigo-50 text-indigo-700{{else}}text-gray-600 hover:bg-gray-50 hover:text-gray-900{{end}}">
                    <span class="mr-3">{{.Icon}}</span>{{.Label}}
                </a>
                {{end}}
            </nav>
        </aside>
        <div class="flex-1">
            <header class="bg-white shadow-sm border-b">
                <div class="px-8 h-16 flex items-center justify-between">
                    <h1 class="text-lg font-semibold text-gray-900">{{.Title}}</h1>
                    <div class="flex items-center">
                        {{if .Session}}
                        <span class="text-sm text-gray-500 mr-4">{{.Session.Username}}</span>
                        <a href="/sign-out" class="text-sm text-gray-500 hover:text-gray-700">Выйти</a>
                        {{else}}
                        <a href="/sign-in" class="text-sm text-gray-500 hover:text-gray-700">Войти</a>
                        {{end}}
                    </div>
                </div>
            </header>
            <main class="px-8 py-6">
                {{template "content" .}}
            </main>
        </div>
    </div>
    {{end}}
</body>
</html>`,

	"components/periodbar": `{{define "periodbar"}}
<div class="flex flex-wrap items-center gap-2 mb-4">
    {{range .Periods}}
    <a href="{{.URL}}" class="px-3 py-1 rounded-full text-sm {{if .Active}}bg-indigo-600 text-white{{else}}bg-white border text-gray-700 hover:bg-gray-50{{end}}">{{.Label}}</a>
    {{end}}
    {{if .Reset}}
    <a href="{{.Reset}}" class="px-3 py-1 text-sm text-gray-500 hover:text-gray-700">Сбросить</a>
    {{end}}
</div>
{{if .Months}}
<div class="flex flex-wrap items-center gap-2 mb-4">
    {{range .Months}}
    <a href="{{.URL}}" class="px-3 py-1 rounded-md text-sm {{if .Active}}bg-indigo-100 text-indigo-800{{else}}text-gray-600 hover:bg-gray-100{{end}}">{{.Label}}</a>
    {{end}}
</div>
{{end}}
{{end}}`,

	"components/searchbox": `{{define "searchbox"}}
<form action="{{.Path}}" method="GET" class="flex items-center gap-3 mb-4">
    {{range $key, $values := .Hidden}}{{range $values}}
    <input type="hidden" name="{{$key}}" value="{{.}}">
    {{end}}{{end}}
    <input type="search" name="q" value="{{.SearchQuery}}" placeholder="Поиск..."
           hx-get="{{.Path}}" hx-include="closest form" hx-target="#results" hx-push-url="true"
           hx-trigger="input changed delay:{{.DebounceMS}}ms, search"
           class="w-80 px-3 py-2 border border-gray-300 rounded-md text-sm focus:outline-none focus:ring-indigo-500 focus:border-indigo-500">
    <span class="htmx-indicator text-sm text-gray-400">Загрузка...</span>
    {{if .ExportURL}}
    <a href="{{.ExportURL}}" class="ml-auto px-3 py-2 text-sm border rounded-md text-gray-700 bg-white hover:bg-gray-50">Экспорт в Excel</a>
    {{end}}
</form>
{{end}}`,

	"components/pager": `{{define "pager"}}
<div class="flex flex-wrap items-center justify-between mt-4 text-sm text-gray-600">
    <div>Отображается {{.Shown}} из {{.Total}}</div>
    <div class="flex items-center gap-1">
        {{if .PrevURL}}<a href="{{.PrevURL}}" class="px-2 py-1 rounded hover:bg-gray-100">&larr;</a>{{end}}
        {{range .Pages}}
        <a href="{{.URL}}" class="px-3 py-1 rounded {{if .Active}}bg-indigo-600 text-white{{else}}hover:bg-gray-100{{end}}">{{.Label}}</a>
        {{end}}
        {{if .NextURL}}<a href="{{.NextURL}}" class="px-2 py-1 rounded hover:bg-gray-100">&rarr;</a>{{end}}
    </div>
    <div class="flex items-center gap-1">
        <span class="mr-1">На странице:</span>
        {{range .Sizes}}
        <a href="{{.URL}}" class="px-2 py-1 rounded {{if .Active}}bg-gray-200 text-gray-900{{else}}hover:bg-gray-100{{end}}">{{.Label}}</a>
        {{end}}
    </div>
</div>
{{end}}`,

	"components/errorpanel": `{{define "errorpanel"}}
<div class="rounded-md bg-red-50 border border-red-200 p-4 mb-4">
    {{range .Messages}}
    <p class="text-sm text-red-700">{{.}}</p>
    {{end}}
    <a href="{{.RetryURL}}" class="inline-block mt-2 text-sm font-medium text-red-700 underline hover:text-red-900">Повторить</a>
</div>
{{end}}`,

	"components/empty": `{{define "empty"}}
<div class="py-12 text-center text-sm text-gray-500">Ничего не найдено</div>
{{end}}`,

	"sign-in": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center bg-gray-50 py-12 px-4">
    <div class="max-w-md w-full space-y-8">
        <h2 class="text-center text-3xl font-extrabold text-gray-900">Вход в панель</h2>
        <form class="mt-8 space-y-4" action="/sign-in" method="POST">
            <div>
                <label for="login" class="block text-sm font-medium text-gray-700">Логин</label>
                <input id="login" name="login" type="text" placeholder="administrator"
                       class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md text-sm">
            </div>
            <div>
                <label for="path" class="block text-sm font-medium text-gray-700">Путь</label>
                <input id="path" name="path" type="text"
                       class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md text-sm">
            </div>
            <button type="submit" class="w-full py-2 px-4 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">
                Войти
            </button>
        </form>
    </div>
</div>
{{end}}`,

	"statistics": `{{define "content"}}
{{template "periodbar" .List}}
{{if .Period}}<p class="text-sm text-gray-500 mb-4">Период: {{.Period}}</p>{{end}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
{{with .Summary}}
<div class="grid grid-cols-1 gap-5 sm:grid-cols-2 lg:grid-cols-3 mb-8">
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Посетители</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{count .Visitors}}</dd>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Заявки</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{count .Requests}}</dd>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Конверсия</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{percent .Conversion}}</dd>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Оплаты</dt>
        <dd class="text-2xl font-semibold text-green-600">{{count .CompletedPayments}}</dd>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Незавершённые оплаты</dt>
        <dd class="text-2xl font-semibold text-yellow-600">{{count .PendingPayments}}</dd>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Выручка</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{rubles .Revenue}}</dd>
    </div>
</div>

<div class="grid grid-cols-1 lg:grid-cols-3 gap-8">
    <div class="bg-white shadow rounded-lg p-5">
        <h2 class="text-base font-medium text-gray-900 mb-3">Заявки по статусам</h2>
        <dl class="space-y-2 text-sm">
            <div class="flex justify-between"><dt>Новые</dt><dd>{{.RequestsByStatus.Pending}}</dd></div>
            <div class="flex justify-between"><dt>В работе</dt><dd>{{.RequestsByStatus.InProgress}}</dd></div>
            <div class="flex justify-between"><dt>Завершены</dt><dd>{{.RequestsByStatus.Approved}}</dd></div>
            <div class="flex justify-between"><dt>Отклонены</dt><dd>{{.RequestsByStatus.Rejected}}</dd></div>
        </dl>
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <h2 class="text-base font-medium text-gray-900 mb-3">Популярные кнопки</h2>
        {{if .TopButtons}}
        <ul class="space-y-2 text-sm">
            {{range .TopButtons}}
            <li class="flex justify-between"><span>{{.Name}}</span><span class="text-gray-500">{{.ClickCount}} {{plural .ClickCount "клик" "клика" "кликов"}}</span></li>
            {{end}}
        </ul>
        {{else}}{{template "empty"}}{{end}}
    </div>
    <div class="bg-white shadow rounded-lg p-5">
        <h2 class="text-base font-medium text-gray-900 mb-3">Напоминания</h2>
        {{if .Reminders}}
        <ul class="space-y-3 text-sm">
            {{range .Reminders}}
            <li>
                <div class="text-gray-900">{{safe .Text}}</div>
                <div class="text-xs text-gray-500">{{timeLeft .End}}</div>
            </li>
            {{end}}
        </ul>
        {{else}}{{template "empty"}}{{end}}
    </div>
</div>
{{end}}
{{end}}
{{end}}`,

	"requests": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <form action="{{.List.Path}}" method="GET" class="flex items-center gap-2">
        <select name="status" onchange="this.form.submit()" class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <option value="">Все статусы</option>
            {{range .Statuses}}
            <option value="{{.Value}}" {{if eq .Value $.Status}}selected{{end}}>{{.Label}}</option>
            {{end}}
        </select>
    </form>
    <a href="/dashboard/requests/new" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Новая заявка</a>
</div>
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">№</th><th class="px-4 py-3">ФИО</th><th class="px-4 py-3">Контакты</th><th class="px-4 py-3">Источник</th><th class="px-4 py-3">Статус</th><th class="px-4 py-3">Создана</th><th></th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Requests}}
            <tr>
                <td class="px-4 py-3 text-gray-500">{{.ID}}</td>
                <td class="px-4 py-3 font-medium text-gray-900">{{.FullName}}</td>
                <td class="px-4 py-3">{{.Phone}}<br><span class="text-gray-500">{{.Email}}</span>{{if .Telegram}}<br><span class="text-gray-500">{{.Telegram}}</span>{{end}}</td>
                <td class="px-4 py-3">{{.Source}}{{if .PartnerCode}}<br><span class="text-gray-500">{{.PartnerCode}}</span>{{end}}</td>
                <td class="px-4 py-3"><span class="px-2 py-1 rounded-full text-xs {{requestBadge .Status}}">{{.Status.Label}}</span></td>
                <td class="px-4 py-3 text-gray-500">{{dateTime .CreatedAt}}</td>
                <td class="px-4 py-3 text-right whitespace-nowrap">
                    <a href="/dashboard/requests/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">Изменить</a>
                    <button hx-delete="/dashboard/requests/{{.ID}}" hx-target="closest tr" hx-swap="outerHTML" hx-confirm="Удалить заявку?" class="ml-3 text-red-600 hover:text-red-900">Удалить</button>
                </td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"payments": `{{define "content"}}
<div class="flex items-center justify-end mb-4">
    <form action="/dashboard/payments/test" method="POST">
        <button type="submit" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Создать тестовую оплату</button>
    </form>
</div>
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">№</th><th class="px-4 py-3">ФИО</th><th class="px-4 py-3">Продукт</th><th class="px-4 py-3">Источник</th><th class="px-4 py-3">Сумма</th><th class="px-4 py-3">Статус</th><th class="px-4 py-3">Дата</th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Payments}}
            <tr>
                <td class="px-4 py-3 text-gray-500">{{.ID}}</td>
                <td class="px-4 py-3"><div class="font-medium text-gray-900">{{.FullName}}</div><div class="text-gray-500">{{.Email}}</div></td>
                <td class="px-4 py-3">{{.Product}}{{with .PromoCode}}<br><span class="text-xs text-gray-500">Промокод {{.Code}}</span>{{end}}</td>
                <td class="px-4 py-3">{{dash .Source}}</td>
                <td class="px-4 py-3 whitespace-nowrap">{{rubles .Amount}}</td>
                <td class="px-4 py-3"><span class="px-2 py-1 rounded-full text-xs {{paymentBadge .Status}}">{{.Status.Label}}</span></td>
                <td class="px-4 py-3 text-gray-500">{{dateTime .CreatedAt}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"clients": `{{define "content"}}
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">Клиент</th><th class="px-4 py-3">Email</th><th class="px-4 py-3">Продукт</th><th class="px-4 py-3">Сумма</th><th class="px-4 py-3">Дата покупки</th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Payments}}
            <tr>
                <td class="px-4 py-3 font-medium text-gray-900">{{.FullName}}</td>
                <td class="px-4 py-3">{{.Email}}</td>
                <td class="px-4 py-3">{{.Product}}</td>
                <td class="px-4 py-3 whitespace-nowrap">{{rubles .Amount}}</td>
                <td class="px-4 py-3 text-gray-500">{{date .CreatedAt}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"visitors": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <form action="{{.List.Path}}" method="GET" class="flex items-center gap-2">
        <input type="text" name="country" value="{{.Country}}" placeholder="Страна"
               class="px-3 py-2 border border-gray-300 rounded-md text-sm">
        <button type="submit" class="px-3 py-2 text-sm border rounded-md bg-white hover:bg-gray-50">Фильтр</button>
    </form>
    <a href="/dashboard/visitors/new" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Новый посетитель</a>
</div>
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">Источник</th><th class="px-4 py-3">Страна</th><th class="px-4 py-3">Устройство</th><th class="px-4 py-3">Браузер</th><th class="px-4 py-3">Страниц</th><th class="px-4 py-3">Время</th><th class="px-4 py-3">Дата</th><th></th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Visitors}}
            <tr>
                <td class="px-4 py-3">{{.TrafficSource}}{{if .UTMTags}}<br><span class="text-xs text-gray-500">{{.UTMTags}}</span>{{end}}</td>
                <td class="px-4 py-3">{{dash .Country}}</td>
                <td class="px-4 py-3">{{dash .Device}}</td>
                <td class="px-4 py-3">{{dash .Browser}}</td>
                <td class="px-4 py-3">{{.PagesViewed}}</td>
                <td class="px-4 py-3">{{dash .TimeOnSite}}</td>
                <td class="px-4 py-3 text-gray-500">{{dateTime .CreatedAt}}</td>
                <td class="px-4 py-3 text-right whitespace-nowrap">
                    <a href="/dashboard/visitors/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">Изменить</a>
                    <button hx-delete="/dashboard/visitors/{{.ID}}" hx-target="closest tr" hx-swap="outerHTML" hx-confirm="Удалить посетителя?" class="ml-3 text-red-600 hover:text-red-900">Удалить</button>
                </td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"partners": `{{define "content"}}
<div class="flex items-center justify-end mb-4">
    <a href="/dashboard/partners/new" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Новый партнер</a>
</div>
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">Имя</th><th class="px-4 py-3">Код</th><th class="px-4 py-3">Реквизиты</th><th class="px-4 py-3">Бонус</th><th class="px-4 py-3">Создан</th><th></th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Partners}}
            <tr>
                <td class="px-4 py-3"><a href="/dashboard/partners/{{.ID}}" class="font-medium text-indigo-600 hover:text-indigo-900">{{.Name}}</a><br><span class="text-gray-500">@{{.Username}}</span></td>
                <td class="px-4 py-3 font-mono">{{.Code}}</td>
                <td class="px-4 py-3">{{.Requisites}}<br><span class="text-xs text-gray-500">{{.RequisiteType.Label}}</span></td>
                <td class="px-4 py-3"><span class="px-2 py-1 rounded-full text-xs {{paymentBadge .BonusStatus}}">{{.BonusStatus.BonusLabel}}</span></td>
                <td class="px-4 py-3 text-gray-500">{{date .CreatedAt}}</td>
                <td class="px-4 py-3 text-right whitespace-nowrap">
                    <a href="/dashboard/partners/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">Изменить</a>
                    <button hx-delete="/dashboard/partners/{{.ID}}" hx-target="closest tr" hx-swap="outerHTML" hx-confirm="Удалить партнера?" class="ml-3 text-red-600 hover:text-red-900">Удалить</button>
                </td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"partner": `{{define "content"}}
<div class="mb-4"><a href="/dashboard/partners" class="text-sm text-indigo-600 hover:text-indigo-900">&larr; Все партнеры</a></div>
{{with .Partner}}
<div class="bg-white shadow rounded-lg p-5 mb-6">
    <dl class="grid grid-cols-2 gap-4 text-sm">
        <div><dt class="text-gray-500">Username</dt><dd>@{{.Username}}</dd></div>
        <div><dt class="text-gray-500">Код</dt><dd class="font-mono">{{.Code}}</dd></div>
        <div><dt class="text-gray-500">Реквизиты</dt><dd>{{.Requisites}} ({{.RequisiteType.Label}})</dd></div>
        <div><dt class="text-gray-500">Бонус</dt><dd><span class="px-2 py-1 rounded-full text-xs {{paymentBadge .BonusStatus}}">{{.BonusStatus.BonusLabel}}</span></dd></div>
        <div><dt class="text-gray-500">Пользователей</dt><dd>{{len .Users}}</dd></div>
        <div><dt class="text-gray-500">Создан</dt><dd>{{dateTime .CreatedAt}}</dd></div>
    </dl>
    <div class="mt-4"><a href="/dashboard/partners/{{.ID}}/edit" class="text-sm text-indigo-600 hover:text-indigo-900">Изменить</a></div>
</div>
{{end}}
<h2 class="text-base font-medium text-gray-900 mb-3">Заявки по коду партнера</h2>
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">№</th><th class="px-4 py-3">ФИО</th><th class="px-4 py-3">Статус</th><th class="px-4 py-3">Создана</th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Requests}}
            <tr>
                <td class="px-4 py-3 text-gray-500">{{.ID}}</td>
                <td class="px-4 py-3"><a href="/dashboard/requests/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">{{.FullName}}</a></td>
                <td class="px-4 py-3"><span class="px-2 py-1 rounded-full text-xs {{requestBadge .Status}}">{{.Status.Label}}</span></td>
                <td class="px-4 py-3 text-gray-500">{{dateTime .CreatedAt}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{if .List}}{{template "pager" .List}}{{end}}
{{end}}
{{end}}`,

	"reminders": `{{define "content"}}
<div class="flex items-center justify-end mb-4">
    <a href="/dashboard/reminders/new" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Новое напоминание</a>
</div>
{{template "searchbox" .List}}
<div id="results">{{template "results" .}}</div>
{{end}}

{{define "results"}}
{{template "periodbar" .List}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg overflow-hidden">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">Текст</th><th class="px-4 py-3">До</th><th class="px-4 py-3">Осталось</th><th></th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Reminders}}
            <tr class="{{if expired .End}}text-gray-400{{end}}">
                <td class="px-4 py-3">{{safe .Text}}</td>
                <td class="px-4 py-3 whitespace-nowrap">{{dateTime .End}}</td>
                <td class="px-4 py-3 whitespace-nowrap">{{timeLeft .End}}</td>
                <td class="px-4 py-3 text-right whitespace-nowrap">
                    <a href="/dashboard/reminders/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">Изменить</a>
                    <button hx-delete="/dashboard/reminders/{{.ID}}" hx-target="closest tr" hx-swap="outerHTML" hx-confirm="Удалить напоминание?" class="ml-3 text-red-600 hover:text-red-900">Удалить</button>
                </td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}
{{end}}
{{end}}`,

	"analytics": `{{define "content"}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="grid grid-cols-1 gap-5 sm:grid-cols-2 lg:grid-cols-4 mb-8">
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">Всего кликов</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{count .TotalClicks}}</dd>
    </div>
    {{range .Clicks}}
    <div class="bg-white shadow rounded-lg p-5">
        <dt class="text-sm font-medium text-gray-500">{{.Type}}</dt>
        <dd class="text-2xl font-semibold text-gray-900">{{count .TotalClicks}}</dd>
        <dd class="text-xs text-gray-500">{{.ButtonCount}} {{plural .ButtonCount "кнопка" "кнопки" "кнопок"}}</dd>
    </div>
    {{end}}
</div>

<div class="bg-white shadow rounded-lg overflow-hidden mb-2">
    {{if .List.Empty}}{{template "empty"}}{{else}}
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50 text-left text-xs font-medium text-gray-500 uppercase">
            <tr><th class="px-4 py-3">Кнопка</th><th class="px-4 py-3">Тип</th><th class="px-4 py-3">Клики</th><th class="px-4 py-3">Активна</th></tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Buttons}}
            <tr>
                <td class="px-4 py-3"><div class="font-medium text-gray-900">{{.Name}}</div>{{if .Description}}<div class="text-gray-500">{{.Description}}</div>{{end}}</td>
                <td class="px-4 py-3">{{.Type}}</td>
                <td class="px-4 py-3">{{count .ClickCount}}</td>
                <td class="px-4 py-3">{{if .IsActive}}Да{{else}}Нет{{end}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}
</div>
{{template "pager" .List}}

<div class="grid grid-cols-1 lg:grid-cols-3 gap-8 mt-8">
    {{range .Breakdowns}}
    <div class="bg-white shadow rounded-lg p-5">
        <h2 class="text-base font-medium text-gray-900 mb-3">{{.Title}}</h2>
        <ul class="space-y-2 text-sm">
            {{range .Rows}}
            <li class="flex justify-between"><span>{{dash .Value}}</span><span class="text-gray-500">{{count .Count}}</span></li>
            {{else}}
            <li class="text-gray-500">Нет данных</li>
            {{end}}
        </ul>
    </div>
    {{end}}
</div>
{{end}}
{{end}}`,

	"form": `{{define "content"}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
{{with .Form}}
<form action="{{.Action}}" method="POST" class="bg-white shadow rounded-lg p-6 max-w-2xl space-y-4">
    {{if .Errors}}
    <div class="rounded-md bg-red-50 p-4">
        {{range .Errors}}<p class="text-sm text-red-700">{{.}}</p>{{end}}
    </div>
    {{end}}
    {{range .Inputs}}
    {{$value := index $.Form.Values .Name}}
    {{$invalid := index $.Form.Invalid .Name}}
    <div>
        <label for="{{.Name}}" class="block text-sm font-medium text-gray-700">{{.Label}}{{if .Required}} *{{end}}</label>
        {{if eq .Type "select"}}
        <select id="{{.Name}}" name="{{.Name}}" class="mt-1 block w-full px-3 py-2 border rounded-md text-sm {{if $invalid}}border-red-500{{else}}border-gray-300{{end}}">
            {{range .Options}}
            <option value="{{.Value}}" {{if eq .Value $value}}selected{{end}}>{{.Label}}</option>
            {{end}}
        </select>
        {{else if eq .Type "textarea"}}
        <textarea id="{{.Name}}" name="{{.Name}}" rows="4" class="mt-1 block w-full px-3 py-2 border rounded-md text-sm {{if $invalid}}border-red-500{{else}}border-gray-300{{end}}">{{$value}}</textarea>
        {{else}}
        <input id="{{.Name}}" name="{{.Name}}" type="{{.Type}}" value="{{$value}}" {{if .Required}}required{{end}}
               class="mt-1 block w-full px-3 py-2 border rounded-md text-sm {{if $invalid}}border-red-500{{else}}border-gray-300{{end}}">
        {{end}}
    </div>
    {{end}}
    <div class="flex items-center gap-3 pt-2">
        <button type="submit" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">{{if .Editing}}Сохранить{{else}}Создать{{end}}</button>
        <a href="{{.Cancel}}" class="text-sm text-gray-500 hover:text-gray-700">Отмена</a>
    </div>
</form>
{{end}}
{{end}}
{{end}}`,

	"error": `{{define "content"}}
{{if .Error}}{{template "errorpanel" .Error}}{{else}}
<div class="bg-white shadow rounded-lg p-8 text-center">
    <p class="text-gray-700">{{.Message}}</p>
    <a href="/dashboard/statistics" class="inline-block mt-4 text-sm text-indigo-600 hover:text-indigo-900">На главную</a>
</div>
{{end}}
{{end}}`,
}
