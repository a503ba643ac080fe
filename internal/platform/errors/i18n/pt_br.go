package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		// Player errors
		CodeAlreadyRegistered: "Esta identidade já está registrada",
		CodeNotRegistered:     "Jogador {{.Identity}} não está registrado",
		CodePlayerInactive:    "Jogador {{.Identity}} está inativo",
		CodeSelfBattle:        "Um jogador não pode batalhar contra si mesmo",

		// Equipment errors
		CodeEquipmentNotFound: "Equipamento {{.ItemID}} nunca foi cunhado",
		CodeNotOwner:          "Equipamento {{.ItemID}} não pertence ao solicitante",
		CodeInvalidCategory:   "Categoria de equipamento inválida",
		CodeInvalidRarity:     "Nível de raridade inválido",

		// Marketplace errors
		CodeInvalidPrice:      "O preço do anúncio deve ser maior que zero",
		CodeNotForSale:        "Equipamento {{.ItemID}} não está à venda",
		CodeSelfTrade:         "O comprador já possui este equipamento",
		CodeInsufficientFunds: "Saldo {{.Balance}} é menor que o preço pedido {{.Price}}",

		// Privileged-operation errors
		CodeUnauthorized: "Apenas o administrador da arena pode executar esta operação",
		CodeGrantInvalid: "Credencial de cunhagem inválida",
		CodeGrantExpired: "Credencial de cunhagem expirada",

		// Ledger guard errors
		CodeReentrantCall: "Uma operação do livro-razão já está em andamento",

		// Reward/payment collaborator errors
		CodeRewardTransferFailed: "A transferência da recompensa de batalha foi recusada",
		CodePaymentFailed:        "O pagamento do mercado foi recusado",
	},
}
