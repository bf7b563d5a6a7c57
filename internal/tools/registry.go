package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Accounts
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_accounts",
		Description: "List configured CallHub accounts (API keys are masked)",
	}, NewListAccountsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_account",
		Description: "Store CallHub API credentials under an account name",
	}, NewAddAccountHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_account",
		Description: "Delete a stored CallHub account",
	}, NewRemoveAccountHandler(deps))

	// Agents
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_agents",
		Description: "List call center agents, optionally including pending (unactivated) ones",
	}, NewListAgentsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_agent",
		Description: "Get one agent by ID",
	}, NewGetAgentHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_agent",
		Description: "Create an agent and assign them to a team by id or name",
	}, NewCreateAgentHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_agent",
		Description: "Delete an agent",
	}, NewDeleteAgentHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_live_agents",
		Description: "List agents currently connected to the call center",
	}, NewLiveAgentsHandler(deps))

	// Teams
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_teams",
		Description: "List agent teams",
	}, NewListTeamsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team",
		Description: "Get one team by ID",
	}, NewGetTeamHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_team",
		Description: "Create an agent team",
	}, NewCreateTeamHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_team",
		Description: "Rename a team",
	}, NewUpdateTeamHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_team",
		Description: "Delete a team",
	}, NewDeleteTeamHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_agents",
		Description: "List the agents in a team",
	}, NewTeamAgentsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_agent_details",
		Description: "Get one agent's membership details within a team",
	}, NewTeamAgentDetailsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_agents_to_team",
		Description: "Assign agents to a team",
	}, NewAddAgentsToTeamHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_agents_from_team",
		Description: "Remove agents from a team",
	}, NewRemoveAgentsFromTeamHandler(deps))

	// Contacts
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts with optional pagination across all pages",
	}, NewListContactsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get one contact by ID",
	}, NewGetContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_contact",
		Description: "Create a contact; the 'contact' field is the phone number and is required",
	}, NewCreateContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update contact fields",
	}, NewUpdateContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact",
	}, NewDeleteContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bulk_create_contacts",
		Description: "Import contacts into a phonebook from a hosted CSV file",
	}, NewBulkCreateContactsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact_fields",
		Description: "List the contact fields available for imports",
	}, NewContactFieldsHandler(deps))

	// Phonebooks
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_phonebooks",
		Description: "List phonebooks",
	}, NewListPhonebooksHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_phonebook",
		Description: "Get one phonebook by ID",
	}, NewGetPhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_phonebook",
		Description: "Create a phonebook",
	}, NewCreatePhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_phonebook",
		Description: "Update a phonebook's name or description",
	}, NewUpdatePhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_phonebook",
		Description: "Delete a phonebook",
	}, NewDeletePhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contacts_to_phonebook",
		Description: "Add existing contacts to a phonebook",
	}, NewAddContactsToPhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_contact_from_phonebook",
		Description: "Remove a contact from a phonebook",
	}, NewRemoveContactFromPhonebookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_phonebook_count",
		Description: "Get the number of contacts in a phonebook",
	}, NewPhonebookCountHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_phonebook_contacts",
		Description: "List the contacts in a phonebook",
	}, NewPhonebookContactsHandler(deps))

	// Tags
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List tags",
	}, NewListTagsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_tag",
		Description: "Get one tag by ID",
	}, NewGetTagHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_tag",
		Description: "Create a tag",
	}, NewCreateTagHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_tag",
		Description: "Rename a tag",
	}, NewUpdateTagHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_tag",
		Description: "Delete a tag",
	}, NewDeleteTagHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "tag_contact",
		Description: "Apply tags to a contact",
	}, NewTagContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "untag_contact",
		Description: "Remove a tag from a contact",
	}, NewUntagContactHandler(deps))

	// Custom fields
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_custom_fields",
		Description: "List custom contact fields",
	}, NewListCustomFieldsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_custom_field",
		Description: "Get one custom field by ID",
	}, NewGetCustomFieldHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_custom_field",
		Description: "Create a custom contact field (1=text 2=number 3=boolean 4=multi-choice)",
	}, NewCreateCustomFieldHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_custom_field",
		Description: "Rename a custom field",
	}, NewUpdateCustomFieldHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_custom_field",
		Description: "Delete a custom field",
	}, NewDeleteCustomFieldHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_contact_custom_field",
		Description: "Set a custom field value on a contact",
	}, NewSetContactCustomFieldHandler(deps))

	// Webhooks
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_webhooks",
		Description: "List webhook subscriptions",
	}, NewListWebhooksHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_webhook",
		Description: "Get one webhook by ID",
	}, NewGetWebhookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_webhook",
		Description: "Subscribe a URL to a CallHub event",
	}, NewCreateWebhookHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_webhook",
		Description: "Delete a webhook subscription",
	}, NewDeleteWebhookHandler(deps))

	// Campaigns
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_call_center_campaigns",
		Description: "List call center campaigns",
	}, NewListCallCenterCampaignsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_call_center_campaign",
		Description: "Change a call center campaign's status (pause, resume, stop, restart)",
	}, NewUpdateCallCenterCampaignHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_call_center_campaign",
		Description: "Delete a call center campaign",
	}, NewDeleteCallCenterCampaignHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_call_center_campaign",
		Description: "Create a call center (power dialer) campaign",
	}, NewCreateCallCenterCampaignHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_voice_broadcasts",
		Description: "List voice broadcast campaigns",
	}, NewListVoiceBroadcastsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_voice_broadcast",
		Description: "Change a voice broadcast's status (start, pause, abort, end)",
	}, NewUpdateVoiceBroadcastHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_voice_broadcast",
		Description: "Delete a voice broadcast campaign",
	}, NewDeleteVoiceBroadcastHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sms_campaigns",
		Description: "List SMS campaigns",
	}, NewListSMSCampaignsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_sms_campaign",
		Description: "Change an SMS campaign's status (start, pause, abort, end)",
	}, NewUpdateSMSCampaignHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_sms_campaign",
		Description: "Delete an SMS campaign",
	}, NewDeleteSMSCampaignHandler(deps))

	// DNC
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_dnc_contact",
		Description: "Add a phone number to a do-not-call list",
	}, NewCreateDNCContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_dnc_contacts",
		Description: "List do-not-call numbers",
	}, NewListDNCContactsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_dnc_contact",
		Description: "Update a do-not-call entry",
	}, NewUpdateDNCContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_dnc_contact",
		Description: "Remove a number from the do-not-call registry",
	}, NewDeleteDNCContactHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_dnc_list",
		Description: "Create a do-not-call list",
	}, NewCreateDNCListHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_dnc_lists",
		Description: "List do-not-call lists",
	}, NewListDNCListsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_dnc_list",
		Description: "Rename a do-not-call list",
	}, NewUpdateDNCListHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_dnc_list",
		Description: "Delete a do-not-call list",
	}, NewDeleteDNCListHandler(deps))

	// Numbers, users, credits
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_rented_numbers",
		Description: "List rented calling numbers",
	}, NewListRentedNumbersHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_validated_numbers",
		Description: "List verified caller IDs",
	}, NewListValidatedNumbersHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rent_number",
		Description: "Rent a calling number",
	}, NewRentNumberHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_users",
		Description: "List account users",
	}, NewListUsersHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_credit_usage",
		Description: "Report credit usage for the account",
	}, NewCreditUsageHandler(deps))

	// Agent activation pipeline
	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_agent_activation_urls",
		Description: "Export activation URLs for all pending agents as CSV",
	}, NewExportActivationURLsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_activation_csv",
		Description: "Parse an activation CSV and report the agent records it contains",
	}, NewProcessActivationCSVHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "activate_agents",
		Description: "Activate pending agents in batches with a shared password; returns a job id",
	}, NewActivateAgentsHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_activation_progress",
		Description: "Report progress of activation jobs",
	}, NewActivationProgressHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_activation",
		Description: "Cancel a running activation job; progress stays checkpointed",
	}, NewCancelActivationHandler(deps))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_activation_progress",
		Description: "Delete the saved activation checkpoint for an account",
	}, NewResetActivationProgressHandler(deps))
}
