package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/matzehuels/cargoassist/pkg/completion"
)

var itemKinds = map[completion.ItemKind]protocol.CompletionItemKind{
	completion.KindCrate:   protocol.CompletionItemKindModule,
	completion.KindVersion: protocol.CompletionItemKindValue,
	completion.KindFeature: protocol.CompletionItemKindEnumMember,
}

func toProtocolList(list completion.List) protocol.CompletionList {
	items := make([]protocol.CompletionItem, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, toProtocolItem(list.Items[i]))
	}
	return protocol.CompletionList{IsIncomplete: list.Incomplete, Items: items}
}

func toProtocolItem(it completion.Item) protocol.CompletionItem {
	insert := it.InsertText
	item := protocol.CompletionItem{
		Label:      it.Label,
		InsertText: &insert,
	}
	if kind, ok := itemKinds[it.Kind]; ok {
		item.Kind = &kind
	}
	if it.Detail != "" {
		detail := it.Detail
		item.Detail = &detail
	}
	if it.Description != "" {
		item.Documentation = it.Description
	}
	for _, edit := range it.AdditionalEdits {
		pos := protocol.Position{
			Line:      uint32(edit.Position.Line),
			Character: uint32(edit.Position.Character),
		}
		item.AdditionalTextEdits = append(item.AdditionalTextEdits, protocol.TextEdit{
			Range:   protocol.Range{Start: pos, End: pos},
			NewText: edit.NewText,
		})
	}
	return item
}
